package render

// RenderOptions describe per-request data renderers can use to customise
// their output without mutating the element tree.
type RenderOptions struct {
	// Locale selects the translation locale for administrative strings.
	Locale string
	// Translator resolves translation keys. Optional; English source strings
	// are used when nil.
	Translator Translator
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
	// Partials overrides template names by partial key, usually sourced from
	// the active theme manifest.
	Partials map[string]string
	// ThemeName records the theme the breakpoints were taken from.
	ThemeName string
}
