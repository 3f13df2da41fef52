package picture

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Partial keys a theme manifest can map to its own template names.
const (
	PartialContainer       = "picture.container"
	PartialResponsiveImage = "picture.responsive_image"
)

const (
	defaultContainerTemplate       = "templates/field-group-picture"
	defaultResponsiveImageTemplate = "templates/responsive-image"
)

// TemplatesFS exposes the embedded templates so themes can extend them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
