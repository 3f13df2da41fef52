// Package testsupport provides in-memory host fakes and golden file helpers
// shared by the package tests and examples.
package testsupport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-picturegroup/pkg/breakpoint"
	"github.com/goliatone/go-picturegroup/pkg/entity"
	"github.com/goliatone/go-picturegroup/pkg/image"
)

// BaseURL is the site URL used by the fixtures.
const BaseURL = "https://example.com"

// Files is an in-memory entity.FileLoader.
type Files map[string]entity.File

var _ entity.FileLoader = Files(nil)

// LoadFile returns the stored file.
func (f Files) LoadFile(_ context.Context, id string) (entity.File, bool, error) {
	file, ok := f[id]
	return file, ok, nil
}

// Add stores a file under its id.
func (f Files) Add(id, uri, filename string) Files {
	f[id] = entity.File{ID: id, URI: uri, Filename: filename}
	return f
}

// Media is an in-memory entity.MediaLoader.
type Media map[string]*entity.Record

var _ entity.MediaLoader = Media(nil)

// LoadMedia returns the stored media record.
func (m Media) LoadMedia(_ context.Context, id string) (*entity.Record, bool, error) {
	rec, ok := m[id]
	return rec, ok, nil
}

// Bundles is an in-memory entity.FieldMetadataProvider keyed by
// "<entityType>.<bundle>".
type Bundles map[string][]entity.FieldDefinition

var _ entity.FieldMetadataProvider = Bundles(nil)

// FieldDefinitions returns the ordered definitions of the bundle.
func (b Bundles) FieldDefinitions(_ context.Context, entityType, bundle string) ([]entity.FieldDefinition, error) {
	return append([]entity.FieldDefinition(nil), b[entityType+"."+bundle]...), nil
}

// ErrLoader fails every call, for asserting host errors propagate.
type ErrLoader struct{ Err error }

func (l ErrLoader) LoadFile(context.Context, string) (entity.File, bool, error) {
	return entity.File{}, false, l.Err
}

func (l ErrLoader) LoadMedia(context.Context, string) (*entity.Record, bool, error) {
	return nil, false, l.Err
}

// Streams returns stream wrappers rooted at BaseURL.
func Streams() image.StreamWrappers {
	return image.StreamWrappers{
		"public":  BaseURL + "/sites/default/files",
		"private": BaseURL + "/system/files",
	}
}

// Materializer returns an image.Materializer over Streams with the supplied
// styles registered under a fixed signing key.
func Materializer(t *testing.T, styles ...string) image.Materializer {
	t.Helper()

	registry, err := image.NewStyleRegistry(Streams(), "fixture-key")
	if err != nil {
		t.Fatalf("style registry: %v", err)
	}
	for _, name := range styles {
		if err := registry.Register(image.Style{Name: name}); err != nil {
			t.Fatalf("register style %q: %v", name, err)
		}
	}
	return image.Materializer{Generator: Streams(), Builder: registry, BaseURL: BaseURL}
}

// Breakpoints returns a small theme breakpoint set: mobile (1x, 2x) then
// wide (1x).
func Breakpoints() []breakpoint.Breakpoint {
	return []breakpoint.Breakpoint{
		{ID: "fixture.mobile", Label: "Mobile", MediaQuery: "(max-width: 599px)", Multipliers: []string{"1x", "2x"}, Group: "fixture"},
		{ID: "fixture.wide", Label: "Wide", MediaQuery: "(min-width: 600px)", Multipliers: []string{"1x"}, Weight: 1, Group: "fixture"},
	}
}

// ArticleDefinitions returns the field definitions of the fixture article
// bundle: a direct image, a media reference and a text field.
func ArticleDefinitions() []entity.FieldDefinition {
	return []entity.FieldDefinition{
		{Name: "title", Label: "Title", Type: "string"},
		{Name: "field_image", Label: "Image", Type: entity.TypeImage, TargetType: entity.TargetTypeFile},
		{Name: "field_media", Label: "Hero media", Type: entity.TypeEntityReference, TargetType: entity.TargetTypeMedia},
		{Name: "field_teaser", Label: "Teaser image", Type: entity.TypeImage, TargetType: entity.TargetTypeFile},
	}
}

// MediaImageDefinitions returns a media bundle with a thumbnail listed before
// the real source image and a trailing text field.
func MediaImageDefinitions() []entity.FieldDefinition {
	return []entity.FieldDefinition{
		{Name: entity.ThumbnailField, Label: "Thumbnail", Type: entity.TypeImage},
		{Name: "body_image", Label: "Image", Type: entity.TypeImage},
		{Name: "caption", Label: "Caption", Type: "text"},
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file as a string.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (the test should stop there).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

// MediaRecord builds a media item of the image bundle pointing body_image at
// fileID and the thumbnail at thumbID.
func MediaRecord(id, thumbID, fileID string) *entity.Record {
	rec := entity.NewRecord(id, "media", "image", MediaImageDefinitions()...)
	if thumbID != "" {
		rec.Set(entity.ThumbnailField, entity.Reference(thumbID, entity.TargetTypeFile))
	}
	if fileID != "" {
		rec.Set("body_image", entity.Reference(fileID, entity.TargetTypeFile))
	}
	rec.Set("caption", entity.Scalar(fmt.Sprintf("Media %s", id)))
	return rec
}
