// Package resolver implements the breakpoint/multiplier to image resolution
// behind the responsive picture formatter.
//
// For every breakpoint (in provider order) and every multiplier with a
// configured field, the resolver loads the referenced file, directly for image
// fields or through the first non-thumbnail image field of a referenced media
// item, and turns it into a relative URL. Candidates are grouped per
// breakpoint into `srcset` + `media` pairs. Missing configuration, values,
// media items or files are expected states and simply drop the candidate;
// when nothing resolves the render context asks for a flat fallback image.
//
// The media scan picks the first qualifying field in definition order. Media
// bundles with several image fields therefore depend on field ordering.
package resolver
