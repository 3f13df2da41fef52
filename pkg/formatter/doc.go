// Package formatter implements field group formatters. A formatter populates
// the group's render element (PreRender), describes its administrative
// settings form and summarises the stored settings.
//
// ResponsiveImage renders a group as a `<picture>` element whose sources are
// resolved from per-breakpoint, per-multiplier field selections.
package formatter
