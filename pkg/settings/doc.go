// Package settings owns the flat formatter settings blob persisted by the host
// framework for every field group instance, plus the deterministic key scheme
// shared by the settings form, the summary and the resolver.
//
// Keys follow `image_<breakpointId>_<multiplier>` with every dot replaced by an
// underscore, and the fallback image lives under the literal `image_fallback`.
// The layout is kept byte-compatible with existing stored configuration.
package settings
