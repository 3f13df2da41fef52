package picturegroup

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-picturegroup/pkg/entity"
	"github.com/goliatone/go-picturegroup/pkg/formatter"
	"github.com/goliatone/go-picturegroup/pkg/orchestrator"
	"github.com/goliatone/go-picturegroup/pkg/render"
	"github.com/goliatone/go-picturegroup/pkg/settings"
)

// Group aliases formatter.Group so callers can describe a field group from
// the top-level package.
type Group = formatter.Group

// Settings aliases the flat per-group settings mapping.
type Settings = settings.Settings

// RenderOptions describes per-request overrides (locale, translator, partials).
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders group for view with the default picture renderer. It
// is the simplest entry point for callers that just want markup.
func GenerateHTML(ctx context.Context, group Group, view entity.View, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Group:  group,
		Entity: view,
	})
}

// SettingsKey derives the settings key of a breakpoint multiplier.
func SettingsKey(breakpointID, multiplier string) string {
	return settings.Key(breakpointID, multiplier)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
