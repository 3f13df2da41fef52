// Package picture renders field group elements populated by the responsive
// image formatter as HTML. The container and picture markup come from
// embedded pongo2 templates that a theme can replace through partials.
package picture
