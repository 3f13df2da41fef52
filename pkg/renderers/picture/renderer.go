package picture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-picturegroup/pkg/render"
	rendertemplate "github.com/goliatone/go-picturegroup/pkg/render/template"
	gotemplate "github.com/goliatone/go-picturegroup/pkg/render/template/gotemplate"
	"github.com/goliatone/go-picturegroup/pkg/resolver"
)

// Name is the registry name of the renderer.
const Name = "picture"

// Renderer turns a field group element populated by the responsive image
// formatter into HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	sanitizer *bluemonday.Policy
	logger    logrus.FieldLogger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the picture renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		cfg.logger = logger
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
			gotemplate.WithTemplateFunc(cfg.templateFuncs),
		)
		if err != nil {
			return nil, fmt.Errorf("picture renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		sanitizer: cfg.sanitizer,
		logger:    cfg.logger,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the container element and its visible children. Children
// carrying a picture payload go through the responsive image template; other
// children contribute their pre-rendered markup.
func (r *Renderer) Render(_ context.Context, element *render.Element, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("picture renderer: template renderer is nil")
	}
	if element == nil {
		return nil, errors.New("picture renderer: element is nil")
	}

	children := make([]string, 0, len(element.Children))
	for _, child := range element.VisibleChildren() {
		markup, err := r.renderChild(child, options)
		if err != nil {
			return nil, err
		}
		markup = strings.TrimSpace(markup)
		if markup == "" {
			continue
		}
		children = append(children, markup)
	}

	var out string
	if element.Type == render.TypeContainer {
		name := templateName(options, PartialContainer, defaultContainerTemplate)
		r.logger.WithFields(logrus.Fields{"element": element.Name, "template": name}).Debug("picture renderer: container")

		result, err := r.templates.RenderTemplate(name, map[string]any{
			"attributes": element.Attributes.Ordered(),
			"children":   children,
			"locale":     options.Locale,
		})
		if err != nil {
			return nil, fmt.Errorf("picture renderer: render container %q: %w", element.Name, err)
		}
		out = result
	} else {
		out = strings.Join(children, "\n")
	}

	if r.sanitizer != nil {
		out = r.sanitizer.Sanitize(out)
	}
	return []byte(out), nil
}

func (r *Renderer) renderChild(child *render.Element, options render.RenderOptions) (string, error) {
	if child.Picture == nil {
		return child.Markup, nil
	}
	return r.RenderPicture(*child.Picture, options)
}

// RenderPicture renders a resolved picture context on its own.
func (r *Renderer) RenderPicture(picture resolver.RenderContext, options render.RenderOptions) (string, error) {
	name := templateName(options, PartialResponsiveImage, defaultResponsiveImageTemplate)
	result, err := r.templates.RenderTemplate(name, map[string]any{
		"sources":          picture.Sources,
		"output_image_tag": picture.OutputImageTag,
		"img_element":      picture.Fallback,
		"locale":           options.Locale,
	})
	if err != nil {
		return "", fmt.Errorf("picture renderer: render picture: %w", err)
	}
	return result, nil
}

func templateName(options render.RenderOptions, key, fallback string) string {
	if name := strings.TrimSpace(options.Partials[key]); name != "" {
		return name
	}
	return fallback
}
