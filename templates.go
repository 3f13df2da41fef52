package picturegroup

import (
	"io/fs"

	"github.com/goliatone/go-picturegroup/pkg/renderers/picture"
)

// EmbeddedTemplates exposes the built-in picture templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return picture.TemplatesFS()
}
