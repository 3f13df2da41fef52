// Package gotemplate adapts the go-template engine to
// template.TemplateRenderer and registers the filters the picture templates
// use.
package gotemplate

import (
	"errors"
	"fmt"
	"io"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-picturegroup/pkg/render/template"
)

var errNilEngine = errors.New("gotemplate: engine is nil")

// Engine renders named templates and template strings through go-template.
// Data goes through a JSON round trip, so struct tags name the template
// variables.
type Engine struct {
	renderer *gotemplatepkg.Engine
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.files == nil {
		return nil, errors.New("gotemplate: a template filesystem is required")
	}

	opts := append([]gotemplatepkg.Option{gotemplatepkg.WithFS(cfg.files)}, cfg.options...)
	renderer, err := gotemplatepkg.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: configure go-template: %w", err)
	}
	if err := registerFilters(renderer); err != nil {
		return nil, fmt.Errorf("gotemplate: register filters: %w", err)
	}
	return &Engine{renderer: renderer}, nil
}

// Render treats name as inline template content when it contains template
// tags and as a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.renderer == nil {
		return "", errNilEngine
	}
	return e.renderer.Render(name, data, out...)
}

// RenderTemplate renders the template at name, appending the configured
// extension when missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.renderer == nil {
		return "", errNilEngine
	}
	return e.renderer.RenderTemplate(name, data, out...)
}

// RenderString parses and renders templateContent without caching it.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.renderer == nil {
		return "", errNilEngine
	}
	return e.renderer.RenderString(templateContent, data, out...)
}

// RegisterFilter registers fn as a template filter. Filters are process
// wide, so registering a name twice is an error.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if e == nil || e.renderer == nil {
		return errNilEngine
	}
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	return e.renderer.RegisterFilter(name, fn)
}

// GlobalContext merges data into the values visible to every template.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.renderer == nil {
		return errNilEngine
	}
	if data == nil {
		return nil
	}
	return e.renderer.GlobalContext(data)
}
