// Package template defines the template engine seam used by markup renderers.
// The gotemplate subpackage adapts github.com/goliatone/go-template to it.
package template
