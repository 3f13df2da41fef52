// Package site describes a host site in a single YAML document: URL layout,
// image styles, bundle field definitions, files, media, entities, field groups
// and themes. The parsed Site implements the capability interfaces the
// resolver, formatter and orchestrator consume.
package site
