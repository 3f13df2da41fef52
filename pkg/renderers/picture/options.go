package picture

import (
	"io/fs"
	"os"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	rendertemplate "github.com/goliatone/go-picturegroup/pkg/render/template"
)

// Option configures the picture renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	templateFuncs    map[string]any
	sanitizer        *bluemonday.Policy
	logger           logrus.FieldLogger
}

// WithTemplatesFS supplies an alternate template bundle. Templates must keep
// the embedded layout (templates/<name>.tpl) or be addressed through partials.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTemplateFuncs registers helpers (see render.TemplateI18nFuncs) on the
// default engine.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFuncs == nil {
			cfg.templateFuncs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFuncs[name] = fn
		}
	}
}

// WithSanitizer filters the rendered markup through policy. Pass nil to use
// Policy().
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy == nil {
			policy = Policy()
		}
		cfg.sanitizer = policy
	}
}

// WithLogger sets the logger used for template selection details.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
