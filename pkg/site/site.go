package site

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-picturegroup/pkg/breakpoint"
	"github.com/goliatone/go-picturegroup/pkg/entity"
	"github.com/goliatone/go-picturegroup/pkg/formatter"
	"github.com/goliatone/go-picturegroup/pkg/image"
)

// Site is the in-memory host built from a site document.
type Site struct {
	BaseURL string
	Streams image.StreamWrappers
	Styles  *image.StyleRegistry

	DefaultTheme   string
	DefaultVariant string
	Themes         map[string]*theme.Manifest

	// Breakpoints is loaded from the breakpoints directory when the document
	// names one.
	Breakpoints *breakpoint.Store

	bundles  map[string][]entity.FieldDefinition
	files    map[string]entity.File
	media    map[string]*entity.Record
	entities map[string]*entity.Record
	groups   []formatter.Group
}

type document struct {
	BaseURL        string                     `yaml:"base_url"`
	ItokKey        string                     `yaml:"itok_key"`
	Streams        map[string]string          `yaml:"streams"`
	Styles         []image.Style              `yaml:"styles"`
	BreakpointsDir string                     `yaml:"breakpoints_dir"`
	Theme          themeRef                   `yaml:"theme"`
	Themes         map[string]themeDocument   `yaml:"themes"`
	Bundles        map[string][]fieldDocument `yaml:"bundles"`
	Files          map[string]fileDocument    `yaml:"files"`
	Media          map[string]entityDocument  `yaml:"media"`
	Entities       map[string]entityDocument  `yaml:"entities"`
	Groups         []formatter.Group          `yaml:"groups"`
}

type themeRef struct {
	Default string `yaml:"default"`
	Variant string `yaml:"variant"`
}

type themeDocument struct {
	Version   string                     `yaml:"version"`
	Templates map[string]string          `yaml:"templates"`
	Tokens    map[string]string          `yaml:"tokens"`
	Variants  map[string]variantDocument `yaml:"variants"`
}

type variantDocument struct {
	Templates map[string]string `yaml:"templates"`
	Tokens    map[string]string `yaml:"tokens"`
}

type fieldDocument struct {
	Name       string `yaml:"name"`
	Label      string `yaml:"label"`
	Type       string `yaml:"type"`
	TargetType string `yaml:"target_type"`
}

type fileDocument struct {
	URI      string `yaml:"uri"`
	Filename string `yaml:"filename"`
}

type entityDocument struct {
	Type   string            `yaml:"type"`
	Bundle string            `yaml:"bundle"`
	Fields map[string]string `yaml:"fields"`
}

// Load reads the site document at path. A relative breakpoints_dir is
// resolved against the document's directory.
func Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("site: read %s: %w", path, err)
	}
	return parse(data, filepath.Dir(path))
}

// Parse builds a Site from a YAML document. breakpoints_dir is resolved
// against the working directory.
func Parse(data []byte) (*Site, error) {
	return parse(data, ".")
}

func parse(data []byte, dir string) (*Site, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("site: empty document")
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("site: parse: %w", err)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(doc.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("site: base_url is required")
	}

	streams := image.StreamWrappers{}
	for scheme, base := range doc.Streams {
		streams[scheme] = base
	}
	if _, ok := streams["public"]; !ok {
		streams["public"] = baseURL + "/sites/default/files"
	}

	styles, err := image.NewStyleRegistry(streams, doc.ItokKey, doc.Styles...)
	if err != nil {
		return nil, fmt.Errorf("site: styles: %w", err)
	}

	s := &Site{
		BaseURL:        baseURL,
		Streams:        streams,
		Styles:         styles,
		DefaultTheme:   doc.Theme.Default,
		DefaultVariant: doc.Theme.Variant,
		Themes:         make(map[string]*theme.Manifest, len(doc.Themes)),
		bundles:        make(map[string][]entity.FieldDefinition, len(doc.Bundles)),
		files:          make(map[string]entity.File, len(doc.Files)),
		media:          make(map[string]*entity.Record, len(doc.Media)),
		entities:       make(map[string]*entity.Record, len(doc.Entities)),
		groups:         doc.Groups,
	}

	for key, fields := range doc.Bundles {
		if !strings.Contains(key, ".") {
			return nil, fmt.Errorf("site: bundle key %q must be <entity_type>.<bundle>", key)
		}
		defs := make([]entity.FieldDefinition, 0, len(fields))
		for _, f := range fields {
			defs = append(defs, entity.FieldDefinition{Name: f.Name, Label: f.Label, Type: f.Type, TargetType: f.TargetType})
		}
		s.bundles[key] = defs
	}

	for id, f := range doc.Files {
		s.files[id] = entity.File{ID: id, URI: f.URI, Filename: f.Filename}
	}

	for id, m := range doc.Media {
		if m.Type == "" {
			m.Type = "media"
		}
		rec, err := s.record(id, m)
		if err != nil {
			return nil, fmt.Errorf("site: media %s: %w", id, err)
		}
		s.media[id] = rec
	}

	for key, e := range doc.Entities {
		rec, err := s.record(entityID(key), e)
		if err != nil {
			return nil, fmt.Errorf("site: entity %s: %w", key, err)
		}
		s.entities[key] = rec
	}

	for name, t := range doc.Themes {
		s.Themes[name] = t.manifest(name)
	}

	if doc.BreakpointsDir != "" {
		bpDir := doc.BreakpointsDir
		if !filepath.IsAbs(bpDir) {
			bpDir = filepath.Join(dir, bpDir)
		}
		store, err := breakpoint.LoadFS(os.DirFS(bpDir))
		if err != nil {
			return nil, fmt.Errorf("site: breakpoints: %w", err)
		}
		s.Breakpoints = store
	}

	return s, nil
}

// record builds an entity from its bundle definitions. Image and media
// reference fields become references; everything else is a scalar.
func (s *Site) record(id string, doc entityDocument) (*entity.Record, error) {
	if doc.Type == "" || doc.Bundle == "" {
		return nil, errors.New("type and bundle are required")
	}
	defs, ok := s.bundles[doc.Type+"."+doc.Bundle]
	if !ok {
		return nil, fmt.Errorf("unknown bundle %s.%s", doc.Type, doc.Bundle)
	}
	rec := entity.NewRecord(id, doc.Type, doc.Bundle, defs...)

	names := make([]string, 0, len(doc.Fields))
	for name := range doc.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := doc.Fields[name]
		def, ok := rec.FieldDefinition(name)
		if !ok {
			return nil, fmt.Errorf("field %q is not defined on %s.%s", name, doc.Type, doc.Bundle)
		}
		switch {
		case value == "":
			rec.Set(name, entity.None())
		case def.IsMediaReference():
			rec.Set(name, entity.Reference(value, entity.TargetTypeMedia))
		case def.IsImage():
			rec.Set(name, entity.Reference(value, entity.TargetTypeFile))
		default:
			rec.Set(name, entity.Scalar(value))
		}
	}
	return rec, nil
}

func (t themeDocument) manifest(name string) *theme.Manifest {
	m := &theme.Manifest{
		Name:      name,
		Version:   t.Version,
		Tokens:    t.Tokens,
		Templates: t.Templates,
	}
	if len(t.Variants) > 0 {
		m.Variants = make(map[string]theme.Variant, len(t.Variants))
		for key, v := range t.Variants {
			m.Variants[key] = theme.Variant{Templates: v.Templates, Tokens: v.Tokens}
		}
	}
	return m
}

// entityID strips the `<type>/` prefix from an entity key.
func entityID(key string) string {
	if _, id, ok := strings.Cut(key, "/"); ok {
		return id
	}
	return key
}
