package formatter

import (
	"context"

	"github.com/goliatone/go-picturegroup/pkg/breakpoint"
	"github.com/goliatone/go-picturegroup/pkg/entity"
	"github.com/goliatone/go-picturegroup/pkg/render"
	"github.com/goliatone/go-picturegroup/pkg/resolver"
	"github.com/goliatone/go-picturegroup/pkg/settings"
)

// Formatter is the contract every field group formatter implements.
type Formatter interface {
	PreRender(ctx context.Context, element *render.Element, rendering Rendering) error
	SettingsForm(ctx context.Context) (Form, error)
	SettingsSummary(ctx context.Context) ([]string, error)
}

// Group is a field group instance as stored by the host.
type Group struct {
	Name       string            `json:"group_name" yaml:"group_name"`
	Label      string            `json:"label" yaml:"label"`
	EntityType string            `json:"entity_type" yaml:"entity_type"`
	Bundle     string            `json:"bundle" yaml:"bundle"`
	Mode       string            `json:"mode" yaml:"mode"`
	FormatType string            `json:"format_type" yaml:"format_type"`
	Children   []string          `json:"children,omitempty" yaml:"children,omitempty"`
	Settings   settings.Settings `json:"format_settings" yaml:"format_settings"`
}

// Rendering is the object being rendered: the entity in context. IDs, when
// set, is shared by every group on the page so container ids stay unique.
type Rendering struct {
	Entity entity.View
	IDs    *HTMLIDs
}

// SourceResolver resolves the picture render context. resolver.Resolver
// satisfies it.
type SourceResolver interface {
	Resolve(ctx context.Context, view entity.View, stored settings.Settings, breakpoints []breakpoint.Breakpoint) (resolver.RenderContext, error)
}

// Dependencies are the host capabilities handed to formatter factories.
type Dependencies struct {
	Breakpoints breakpoint.Provider
	Fields      entity.FieldMetadataProvider
	Resolver    SourceResolver
	// BreakpointGroup is the breakpoint group to enumerate, usually the
	// active theme name.
	BreakpointGroup string
	// Options carries the translator used for administrative strings.
	Options render.RenderOptions
}
