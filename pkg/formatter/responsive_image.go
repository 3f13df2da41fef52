package formatter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-picturegroup/pkg/breakpoint"
	"github.com/goliatone/go-picturegroup/pkg/entity"
	"github.com/goliatone/go-picturegroup/pkg/render"
	"github.com/goliatone/go-picturegroup/pkg/settings"
)

// ResponsiveImageID is the plugin id stored in a group's format_type.
const ResponsiveImageID = "responsive_image"

// PictureChild is the name of the child element carrying the picture payload.
const PictureChild = "picture"

const (
	selectSentinel   = "- Select -"
	titleBreakpoint  = "Image for the breakpoint (@name : @multiplier - @srcset)"
	titleFallback    = "Fallback Image"
	titleID          = "ID"
	titleClasses     = "Extra CSS classes"
	summaryImage     = "Image (@name : @multiplier - @srcset) : @image"
	summaryFallback  = "Image fallback: @image"
	imageFieldWeight = 1
	baseFieldWeight  = 10
)

// ResponsiveImageDefinition returns the plugin definition of the responsive
// image formatter.
func ResponsiveImageDefinition() Definition {
	return Definition{
		ID:                ResponsiveImageID,
		Label:             "Responsive image",
		Description:       "Field group as picture element.",
		SupportedContexts: []string{ContextView},
		Factory: func(group Group, deps Dependencies) (Formatter, error) {
			return NewResponsiveImage(group, deps)
		},
	}
}

// ResponsiveImage renders a field group as a picture element whose sources
// are image fields of the entity, selected per breakpoint and multiplier.
type ResponsiveImage struct {
	group  Group
	deps   Dependencies
	labels *bluemonday.Policy
}

// NewResponsiveImage validates deps and returns the formatter for group.
func NewResponsiveImage(group Group, deps Dependencies) (*ResponsiveImage, error) {
	if deps.Breakpoints == nil {
		return nil, errors.New("formatter: breakpoint provider is required")
	}
	if group.Settings == nil {
		group.Settings = settings.Settings{}
	}
	return &ResponsiveImage{
		group:  group,
		deps:   deps,
		labels: bluemonday.StrictPolicy(),
	}, nil
}

// Group returns the group the formatter was built for.
func (f *ResponsiveImage) Group() Group {
	return f.group
}

// PreRender hides the group's member fields, turns element into an
// attributed container and attaches the resolved picture as a child.
func (f *ResponsiveImage) PreRender(ctx context.Context, element *render.Element, rendering Rendering) error {
	if element == nil {
		return errors.New("formatter: element is nil")
	}
	if f.deps.Resolver == nil {
		return errors.New("formatter: source resolver is required for rendering")
	}

	HideChildren(element)
	element.Type = render.TypeContainer

	breakpoints, err := f.breakpoints(ctx)
	if err != nil {
		return err
	}

	picture, err := f.deps.Resolver.Resolve(ctx, rendering.Entity, f.group.Settings, breakpoints)
	if err != nil {
		return fmt.Errorf("formatter: resolve group %q: %w", f.group.Name, err)
	}

	child, ok := element.Child(PictureChild)
	if !ok {
		child = element.AddChild(render.NewElement(PictureChild))
	}
	child.Hidden = false
	child.Picture = &picture
	element.Attributes = BuildAttributes(f.group.Settings)
	if id := element.Attributes["id"]; id != "" && rendering.IDs != nil {
		element.Attributes["id"] = rendering.IDs.Unique(id)
	}
	return nil
}

// SettingsForm returns the administrative controls. Image selects are only
// offered when the bundle has image candidates.
func (f *ResponsiveImage) SettingsForm(ctx context.Context) (Form, error) {
	form := Form{Elements: f.baseElements()}

	candidates, err := f.candidates(ctx)
	if err != nil {
		return Form{}, err
	}
	if len(candidates) == 0 {
		return form, nil
	}

	breakpoints, err := f.breakpoints(ctx)
	if err != nil {
		return Form{}, err
	}

	options := f.selectOptions(candidates)
	for _, bp := range breakpoints {
		for _, multiplier := range bp.Multipliers {
			key := settings.Key(bp.ID, multiplier)
			form.Elements = append(form.Elements, FormElement{
				Key:          key,
				Title:        f.t(titleBreakpoint, breakpointParams(bp, multiplier)),
				Type:         ControlSelect,
				Options:      options,
				DefaultValue: f.group.Settings.Get(key),
				Weight:       imageFieldWeight,
			})
		}
	}

	form.Elements = append(form.Elements, FormElement{
		Key:          settings.FallbackKey,
		Title:        f.t(titleFallback, nil),
		Type:         ControlSelect,
		Options:      options,
		DefaultValue: f.group.Settings.Get(settings.FallbackKey),
		Weight:       imageFieldWeight,
	})
	return form, nil
}

// SettingsSummary returns one line per configured breakpoint multiplier and
// one for the fallback. Stored field names that are no longer candidates are
// skipped and reported as *StaleReferenceError values joined into the
// returned error.
func (f *ResponsiveImage) SettingsSummary(ctx context.Context) ([]string, error) {
	candidates, err := f.candidates(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(candidates))
	for _, def := range candidates {
		labels[def.Name] = def.DisplayLabel()
	}

	breakpoints, err := f.breakpoints(ctx)
	if err != nil {
		return nil, err
	}

	var (
		summary []string
		stale   []error
	)
	for _, sel := range settings.Configured(breakpoints, f.group.Settings) {
		label, ok := labels[sel.Field]
		if !ok {
			stale = append(stale, f.staleReference(sel.Key, sel.Field))
			continue
		}
		params := breakpointParams(sel.Breakpoint, sel.Multiplier)
		params["@image"] = label
		summary = append(summary, f.t(summaryImage, f.sanitize(params)))
	}

	if field := f.group.Settings.Get(settings.FallbackKey); field != "" {
		if label, ok := labels[field]; ok {
			summary = append(summary, f.t(summaryFallback, f.sanitize(map[string]string{"@image": label})))
		} else {
			stale = append(stale, f.staleReference(settings.FallbackKey, field))
		}
	}

	return summary, errors.Join(stale...)
}

// ValidateSettings checks submitted values against the settings form.
func (f *ResponsiveImage) ValidateSettings(ctx context.Context, values settings.Settings) error {
	form, err := f.SettingsForm(ctx)
	if err != nil {
		return err
	}
	return form.Validate(values)
}

func (f *ResponsiveImage) baseElements() []FormElement {
	return []FormElement{
		{
			Key:          settings.IDKey,
			Title:        f.t(titleID, nil),
			Type:         ControlTextfield,
			DefaultValue: f.group.Settings.Get(settings.IDKey),
			Weight:       baseFieldWeight,
			validate:     validateID,
		},
		{
			Key:          settings.ClassesKey,
			Title:        f.t(titleClasses, nil),
			Type:         ControlTextfield,
			DefaultValue: f.group.Settings.Get(settings.ClassesKey),
			Weight:       baseFieldWeight,
			validate:     validateClasses,
		},
	}
}

func (f *ResponsiveImage) selectOptions(candidates []entity.FieldDefinition) []Option {
	options := make([]Option, 0, len(candidates)+1)
	options = append(options, Option{Value: "", Label: f.t(selectSentinel, nil)})
	for _, def := range candidates {
		options = append(options, Option{Value: def.Name, Label: def.DisplayLabel()})
	}
	return options
}

func (f *ResponsiveImage) breakpoints(ctx context.Context) ([]breakpoint.Breakpoint, error) {
	breakpoints, err := f.deps.Breakpoints.BreakpointsByGroup(ctx, f.deps.BreakpointGroup)
	if err != nil {
		return nil, fmt.Errorf("formatter: load breakpoints for %q: %w", f.deps.BreakpointGroup, err)
	}
	return breakpoints, nil
}

func (f *ResponsiveImage) candidates(ctx context.Context) ([]entity.FieldDefinition, error) {
	if f.deps.Fields == nil {
		return nil, errors.New("formatter: field metadata provider is required")
	}
	defs, err := f.deps.Fields.FieldDefinitions(ctx, f.group.EntityType, f.group.Bundle)
	if err != nil {
		return nil, fmt.Errorf("formatter: field definitions for %s.%s: %w", f.group.EntityType, f.group.Bundle, err)
	}
	return entity.ImageFieldCandidates(defs), nil
}

func (f *ResponsiveImage) staleReference(key, field string) error {
	return &StaleReferenceError{Key: key, Field: field, Group: f.group.Name}
}

func (f *ResponsiveImage) sanitize(params map[string]string) map[string]string {
	for name, value := range params {
		params[name] = strings.TrimSpace(f.labels.Sanitize(value))
	}
	return params
}

func (f *ResponsiveImage) t(source string, params map[string]string) string {
	return render.T(f.deps.Options, source, params)
}

func breakpointParams(bp breakpoint.Breakpoint, multiplier string) map[string]string {
	return map[string]string{
		"@name":       bp.Label,
		"@multiplier": multiplier,
		"@srcset":     bp.MediaQuery,
	}
}
