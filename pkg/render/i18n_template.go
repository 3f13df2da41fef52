package render

import (
	"fmt"
	"strings"
)

// TemplateI18nConfig configures the helpers returned by TemplateI18nFuncs.
type TemplateI18nConfig struct {
	// LocaleKey is the data key holding the locale when a helper receives the
	// template data instead of a locale string. Defaults to "locale".
	LocaleKey string
	// FuncName renames the translate helper.
	FuncName  string
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers for picture.WithTemplateFuncs:
//
//	translate(localeSrc, key, ...params) string
//	current_locale(localeSrc) string
//
// localeSrc is a locale string or template data carrying one. A map passed as
// the first param fills @placeholders in the translated string, the same way
// administrative strings are formatted.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}
	name := strings.TrimSpace(cfg.FuncName)
	if name == "" {
		name = "translate"
	}
	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		name: func(localeSrc any, key string, params ...any) string {
			if strings.TrimSpace(key) == "" {
				return ""
			}
			msg := translate(localeOf(localeSrc, localeKey), key, key, t, onMissing)
			return Format(msg, placeholders(params))
		},
		"current_locale": func(localeSrc any) string {
			return localeOf(localeSrc, localeKey)
		},
	}
}

// localeOf reads the locale from a string, from RenderOptions, or from a map
// under key. Template data reaches helpers as map[string]any.
func localeOf(src any, key string) string {
	switch v := src.(type) {
	case string:
		return v
	case RenderOptions:
		return v.Locale
	case *RenderOptions:
		if v != nil {
			return v.Locale
		}
	case map[string]string:
		return v[key]
	case map[string]any:
		if value, ok := v[key]; ok && value != nil {
			return strings.TrimSpace(fmt.Sprint(value))
		}
	}
	return ""
}

func placeholders(params []any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := map[string]string{}
	switch v := params[0].(type) {
	case map[string]string:
		for name, value := range v {
			out[name] = value
		}
	case map[string]any:
		for name, value := range v {
			out[name] = fmt.Sprint(value)
		}
	}
	return out
}
