package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-picturegroup/pkg/render"
)

// ErrNoTheme is returned when neither the request nor the defaults name a
// theme. The theme name selects the breakpoint group.
var ErrNoTheme = errors.New("orchestrator: no theme selected")

type selectedTheme struct {
	name     string
	variant  string
	partials map[string]string
}

// apply records the theme on opts and layers request partials over the
// theme's templates.
func (s selectedTheme) apply(opts render.RenderOptions) render.RenderOptions {
	opts.ThemeName = s.name
	if len(s.partials) == 0 {
		return opts
	}
	merged := make(map[string]string, len(s.partials)+len(opts.Partials))
	for key, value := range s.partials {
		merged[key] = value
	}
	for key, value := range opts.Partials {
		if strings.TrimSpace(value) != "" {
			merged[key] = value
		}
	}
	opts.Partials = merged
	return opts
}

func (o *Orchestrator) selectTheme(name, variant string) (selectedTheme, error) {
	if strings.TrimSpace(name) == "" {
		name = o.defaultTheme
	}
	if strings.TrimSpace(variant) == "" {
		variant = o.defaultVariant
	}

	if o.themes == nil {
		if name == "" {
			return selectedTheme{}, ErrNoTheme
		}
		return selectedTheme{name: name, variant: variant}, nil
	}

	selection, err := o.themes.Select(name, variant)
	if err != nil {
		return selectedTheme{}, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil || strings.TrimSpace(selection.Theme) == "" {
		if name == "" {
			return selectedTheme{}, ErrNoTheme
		}
		return selectedTheme{name: name, variant: variant}, nil
	}

	out := selectedTheme{
		name:     selection.Theme,
		variant:  selection.Variant,
		partials: map[string]string{},
	}
	if manifest := selection.Manifest; manifest != nil {
		for key, value := range manifest.Templates {
			out.partials[key] = value
		}
		if v, ok := manifest.Variants[selection.Variant]; ok {
			for key, value := range v.Templates {
				out.partials[key] = value
			}
		}
	}
	return out, nil
}
