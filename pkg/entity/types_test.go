package entity_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-picturegroup/pkg/entity"
)

func TestImageFieldCandidates_KeepsDefinitionOrder(t *testing.T) {
	defs := []entity.FieldDefinition{
		{Name: "title", Type: "string"},
		{Name: "field_media", Type: entity.TypeEntityReference, TargetType: entity.TargetTypeMedia},
		{Name: "field_tags", Type: entity.TypeEntityReference, TargetType: "taxonomy_term"},
		{Name: "field_image", Type: entity.TypeImage},
	}

	got := entity.ImageFieldCandidates(defs)
	names := make([]string, 0, len(got))
	for _, def := range got {
		names = append(names, def.Name)
	}
	if diff := cmp.Diff([]string{"field_media", "field_image"}, names); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_FieldValue(t *testing.T) {
	rec := entity.NewRecord("1", "node", "article",
		entity.FieldDefinition{Name: "field_image", Type: entity.TypeImage},
	).
		Set("field_image", entity.Reference("42", entity.TargetTypeFile)).
		Set("field_empty", entity.None())

	value, ok := rec.FieldValue("field_image")
	if !ok {
		t.Fatalf("expected value")
	}
	if id, ok := value.Target(); !ok || id != "42" {
		t.Fatalf("expected target 42, got %q (%v)", id, ok)
	}
	if _, ok := rec.FieldValue("field_empty"); ok {
		t.Fatalf("none value must report absent")
	}
	if _, ok := rec.FieldDefinition("field_missing"); ok {
		t.Fatalf("unexpected definition")
	}
}

func TestFieldValue_TargetRequiresReference(t *testing.T) {
	if _, ok := entity.Scalar("42").Target(); ok {
		t.Fatalf("scalar must not expose a target")
	}
	if _, ok := entity.Reference(" ", entity.TargetTypeFile).Target(); ok {
		t.Fatalf("blank reference must not expose a target")
	}
}

func TestFieldDefinition_DisplayLabel(t *testing.T) {
	if got := (entity.FieldDefinition{Name: "field_hero"}).DisplayLabel(); got != "field_hero" {
		t.Fatalf("expected machine name fallback, got %q", got)
	}
}
