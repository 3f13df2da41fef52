package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"

	theme "github.com/goliatone/go-theme"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-picturegroup/pkg/breakpoint"
	"github.com/goliatone/go-picturegroup/pkg/entity"
	"github.com/goliatone/go-picturegroup/pkg/formatter"
	"github.com/goliatone/go-picturegroup/pkg/render"
	"github.com/goliatone/go-picturegroup/pkg/renderers/picture"
)

const defaultRendererName = picture.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithBreakpoints injects the breakpoint provider.
func WithBreakpoints(provider breakpoint.Provider) Option {
	return func(o *Orchestrator) {
		o.breakpoints = provider
	}
}

// WithFieldMetadata injects the provider of bundle field definitions.
func WithFieldMetadata(fields entity.FieldMetadataProvider) Option {
	return func(o *Orchestrator) {
		o.fields = fields
	}
}

// WithResolver injects the picture source resolver.
func WithResolver(resolver formatter.SourceResolver) Option {
	return func(o *Orchestrator) {
		o.resolver = resolver
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithFormatterRegistry injects the formatter plugin registry.
func WithFormatterRegistry(registry *formatter.Registry) Option {
	return func(o *Orchestrator) {
		o.formatters = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
// The selected theme names the breakpoint group and contributes template
// partials.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themes = selector
	}
}

// WithDefaultTheme sets the theme and variant used when a request leaves them
// empty.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// WithLogger sets the logger for pipeline diagnostics.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates theme selection, formatting and rendering of a
// field group. It applies defaults (responsive image formatter, picture
// renderer) while remaining open to dependency injection.
type Orchestrator struct {
	breakpoints     breakpoint.Provider
	fields          entity.FieldMetadataProvider
	resolver        formatter.SourceResolver
	formatters      *formatter.Registry
	registry        *render.Registry
	defaultRenderer string
	themes          theme.ThemeSelector
	defaultTheme    string
	defaultVariant  string
	logger          logrus.FieldLogger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render of a field group for an entity.
type Request struct {
	Group  formatter.Group
	Entity entity.View

	// Element is the group's render element. When nil one is built with a
	// child per Group.Children entry.
	Element *render.Element

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select the theme. Empty values use the
	// configured defaults.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries locale, translator and partial overrides. Partials
	// set here win over the theme's templates.
	RenderOptions render.RenderOptions

	// IDs is shared across the groups of one page so container ids stay
	// unique. Nil leaves ids as configured.
	IDs *formatter.HTMLIDs
}

// AdminRequest selects the group and theme for the settings form and summary.
type AdminRequest struct {
	Group         formatter.Group
	ThemeName     string
	ThemeVariant  string
	RenderOptions render.RenderOptions
}

// Generate runs theme selection, the formatter's PreRender and the renderer,
// returning the rendered bytes (HTML for the picture renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	if req.Entity == nil {
		return nil, errors.New("orchestrator: entity is required")
	}

	f, opts, err := o.formatterFor(req.Group, req.ThemeName, req.ThemeVariant, req.RenderOptions, formatter.ContextView)
	if err != nil {
		return nil, err
	}

	element := req.Element
	if element == nil {
		element = groupElement(req.Group)
	}

	if err := f.PreRender(ctx, element, formatter.Rendering{Entity: req.Entity, IDs: req.IDs}); err != nil {
		return nil, fmt.Errorf("orchestrator: pre render: %w", err)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	o.logger.WithFields(logrus.Fields{
		"group":    req.Group.Name,
		"theme":    opts.ThemeName,
		"renderer": renderer.Name(),
	}).Debug("orchestrator: rendering field group")

	output, err := renderer.Render(ctx, element, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// SettingsForm returns the formatter's settings form for the selected theme's
// breakpoints.
func (o *Orchestrator) SettingsForm(ctx context.Context, req AdminRequest) (formatter.Form, error) {
	if err := o.ready(ctx); err != nil {
		return formatter.Form{}, err
	}
	f, _, err := o.formatterFor(req.Group, req.ThemeName, req.ThemeVariant, req.RenderOptions, "")
	if err != nil {
		return formatter.Form{}, err
	}
	return f.SettingsForm(ctx)
}

// Summary returns the formatter's settings summary. Stale references are
// returned alongside the lines that could be built.
func (o *Orchestrator) Summary(ctx context.Context, req AdminRequest) ([]string, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	f, _, err := o.formatterFor(req.Group, req.ThemeName, req.ThemeVariant, req.RenderOptions, "")
	if err != nil {
		return nil, err
	}
	return f.SettingsSummary(ctx)
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) formatterFor(group formatter.Group, themeName, variant string, opts render.RenderOptions, usage string) (formatter.Formatter, render.RenderOptions, error) {
	if group.FormatType == "" {
		group.FormatType = formatter.ResponsiveImageID
	}
	def, ok := o.formatters.Definition(group.FormatType)
	if !ok {
		return nil, opts, fmt.Errorf("orchestrator: formatter %q not registered", group.FormatType)
	}
	if usage != "" && !def.Supports(usage) {
		return nil, opts, fmt.Errorf("orchestrator: formatter %q does not support %q context", def.ID, usage)
	}

	selected, err := o.selectTheme(themeName, variant)
	if err != nil {
		return nil, opts, err
	}
	opts = selected.apply(opts)

	f, err := o.formatters.New(group, formatter.Dependencies{
		Breakpoints:     o.breakpoints,
		Fields:          o.fields,
		Resolver:        o.resolver,
		BreakpointGroup: selected.name,
		Options:         opts,
	})
	if err != nil {
		return nil, opts, fmt.Errorf("orchestrator: formatter %q: %w", group.FormatType, err)
	}
	return f, opts, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		o.logger = logger
	}
	if o.formatters == nil {
		o.formatters = formatter.NewDefaultRegistry()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := picture.New(picture.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.breakpoints == nil && o.initialiseErr == nil {
		o.initialiseErr = errors.New("orchestrator: breakpoint provider is required")
	}
}

func groupElement(group formatter.Group) *render.Element {
	element := render.NewElement(group.Name)
	for i, name := range group.Children {
		child := render.NewElement(name)
		child.Weight = i
		element.AddChild(child)
	}
	return element
}
