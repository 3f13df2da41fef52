// Package render holds the render tree that field group formatters populate,
// the Renderer contract that turns it into markup, a renderer registry and the
// translation seam used for administrative strings.
package render
