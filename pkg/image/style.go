package image

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownStyle is returned when a derivative is requested for a style that
// is not registered. Style names are supplied by configuration, so this is a
// caller error.
var ErrUnknownStyle = errors.New("image: unknown image style")

// DerivativeURLBuilder builds the public URL of a styled derivative.
type DerivativeURLBuilder interface {
	BuildURL(ctx context.Context, style, uri string) (string, error)
}

// Effect is a single transform step of a style. Effects are metadata only;
// generating derivative files is the host's job.
type Effect struct {
	ID   string         `json:"id" yaml:"id"`
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// Style describes a named derivative.
type Style struct {
	Name    string   `json:"name" yaml:"name"`
	Label   string   `json:"label" yaml:"label"`
	Effects []Effect `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// StyleRegistry holds the known styles and builds derivative URLs using the
// `<files base>/styles/<style>/<scheme>/<path>?itok=<token>` layout.
type StyleRegistry struct {
	styles  map[string]Style
	streams StreamWrappers
	key     []byte
}

var _ DerivativeURLBuilder = (*StyleRegistry)(nil)

// NewStyleRegistry creates a registry. key signs the itok token; an empty key
// disables the token query parameter.
func NewStyleRegistry(streams StreamWrappers, key string, styles ...Style) (*StyleRegistry, error) {
	r := &StyleRegistry{
		styles:  make(map[string]Style, len(styles)),
		streams: streams,
		key:     []byte(key),
	}
	for _, style := range styles {
		if err := r.Register(style); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a style. Duplicate names return an error.
func (r *StyleRegistry) Register(style Style) error {
	name := strings.TrimSpace(style.Name)
	if name == "" {
		return errors.New("image: style name is required")
	}
	if _, exists := r.styles[name]; exists {
		return fmt.Errorf("image: style %q already registered", name)
	}
	style.Name = name
	r.styles[name] = style
	return nil
}

// Style looks a style up by name.
func (r *StyleRegistry) Style(name string) (Style, bool) {
	if r == nil {
		return Style{}, false
	}
	style, ok := r.styles[name]
	return style, ok
}

// Names returns the registered style names, sorted.
func (r *StyleRegistry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildURL returns the absolute derivative URL for uri under style.
func (r *StyleRegistry) BuildURL(_ context.Context, style, uri string) (string, error) {
	if _, ok := r.Style(style); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	scheme, target := SplitURI(strings.TrimSpace(uri))
	if scheme == "" {
		scheme = "public"
	}
	base, ok := r.streams["public"]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownScheme, "public")
	}

	derived := joinURL(base, strings.Join([]string{"styles", style, scheme, encodePath(target)}, "/"))
	if token := r.pathToken(style, uri); token != "" {
		derived += "?itok=" + token
	}
	return derived, nil
}

// pathToken mirrors the host's derivative token: the first eight characters
// of the URL-safe base64 HMAC-SHA256 of "<style>:<uri>".
func (r *StyleRegistry) pathToken(style, uri string) string {
	if len(r.key) == 0 {
		return ""
	}
	mac := hmac.New(sha256.New, r.key)
	mac.Write([]byte(style + ":" + uri))
	sum := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return sum[:8]
}

type stylesFile struct {
	Styles []Style `yaml:"styles"`
}

// LoadStyles reads a YAML document listing styles under a `styles` key.
func LoadStyles(fsys fs.FS, name string) ([]Style, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("image: read styles %s: %w", name, err)
	}
	var doc stylesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("image: parse styles %s: %w", name, err)
	}
	return doc.Styles, nil
}
