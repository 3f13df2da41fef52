package gotemplate

import (
	"io/fs"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	files   fs.FS
	options []gotemplatepkg.Option
}

// WithFS sets the filesystem templates are loaded from. Required.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension overrides the extension appended to template names (".tpl").
func WithExtension(ext string) Option {
	return func(cfg *config) {
		if ext = strings.TrimSpace(ext); ext == "" {
			return
		}
		cfg.options = append(cfg.options, gotemplatepkg.WithExtension(ext))
	}
}

// WithTemplateFunc registers helpers. pongo2.FilterFunction values become
// filters; other funcs are exposed as globals.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if funcs = trimKeys(funcs); len(funcs) > 0 {
			cfg.options = append(cfg.options, gotemplatepkg.WithTemplateFunc(funcs))
		}
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if data = trimKeys(data); len(data) > 0 {
			cfg.options = append(cfg.options, gotemplatepkg.WithGlobalData(data))
		}
	}
}

// WithGoTemplateOptions passes options straight to the go-template engine.
// All options apply in the order they are given to New.
func WithGoTemplateOptions(options ...gotemplatepkg.Option) Option {
	return func(cfg *config) {
		for _, opt := range options {
			if opt != nil {
				cfg.options = append(cfg.options, opt)
			}
		}
	}
}

func trimKeys(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		if key = strings.TrimSpace(key); key != "" {
			out[key] = value
		}
	}
	return out
}
