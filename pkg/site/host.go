package site

import (
	"context"
	"errors"
	"fmt"
	"sort"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-picturegroup/pkg/entity"
	"github.com/goliatone/go-picturegroup/pkg/formatter"
	"github.com/goliatone/go-picturegroup/pkg/image"
)

// ErrUnknownTheme is returned by Select for themes the site does not define.
var ErrUnknownTheme = errors.New("site: unknown theme")

var (
	_ entity.FieldMetadataProvider = (*Site)(nil)
	_ entity.FileLoader            = (*Site)(nil)
	_ entity.MediaLoader           = (*Site)(nil)
	_ theme.ThemeSelector          = (*Site)(nil)
)

// FieldDefinitions returns the ordered definitions of a bundle.
func (s *Site) FieldDefinitions(_ context.Context, entityType, bundle string) ([]entity.FieldDefinition, error) {
	return append([]entity.FieldDefinition(nil), s.bundles[entityType+"."+bundle]...), nil
}

// LoadFile returns a file by id.
func (s *Site) LoadFile(_ context.Context, id string) (entity.File, bool, error) {
	file, ok := s.files[id]
	return file, ok, nil
}

// LoadMedia returns a media item by id.
func (s *Site) LoadMedia(_ context.Context, id string) (*entity.Record, bool, error) {
	rec, ok := s.media[id]
	return rec, ok, nil
}

// Entity returns the entity stored under key (`node/1`).
func (s *Site) Entity(key string) (*entity.Record, bool) {
	rec, ok := s.entities[key]
	return rec, ok
}

// EntityKeys returns the entity keys, sorted.
func (s *Site) EntityKeys() []string {
	keys := make([]string, 0, len(s.entities))
	for key := range s.entities {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Group returns the field group named name.
func (s *Site) Group(name string) (formatter.Group, bool) {
	for _, group := range s.groups {
		if group.Name == name {
			return group, true
		}
	}
	return formatter.Group{}, false
}

// Groups returns the field groups in document order.
func (s *Site) Groups() []formatter.Group {
	return append([]formatter.Group(nil), s.groups...)
}

// Materializer returns the URL materializer for the site's streams and styles.
func (s *Site) Materializer() image.Materializer {
	return image.Materializer{Generator: s.Streams, Builder: s.Styles, BaseURL: s.BaseURL}
}

// Select implements theme.ThemeSelector over the site's themes. Empty names
// use the site defaults; an unknown variant selects the base theme.
func (s *Site) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.DefaultTheme
	}
	if variant == "" {
		variant = s.DefaultVariant
	}
	manifest, ok := s.Themes[name]
	if !ok {
		if name != "" && name == s.DefaultTheme {
			return &theme.Selection{Theme: name}, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	if _, ok := manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}
