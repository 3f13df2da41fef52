package entity

import (
	"context"
	"strings"
)

// Field types and target types understood by the formatter.
const (
	TypeImage           = "image"
	TypeEntityReference = "entity_reference"
	TargetTypeMedia     = "media"
	TargetTypeFile      = "file"

	// ThumbnailField is the conventional media thumbnail field skipped when
	// scanning a media item for its source image.
	ThumbnailField = "thumbnail"
)

// FieldDefinition carries the metadata of a field attached to a bundle.
type FieldDefinition struct {
	Name       string `json:"name" yaml:"name"`
	Label      string `json:"label" yaml:"label"`
	Type       string `json:"type" yaml:"type"`
	TargetType string `json:"target_type,omitempty" yaml:"target_type,omitempty"`
}

// IsImage reports whether the field stores an image file directly.
func (d FieldDefinition) IsImage() bool {
	return d.Type == TypeImage
}

// IsMediaReference reports whether the field references a media item.
func (d FieldDefinition) IsMediaReference() bool {
	return d.Type == TypeEntityReference && d.TargetType == TargetTypeMedia
}

// DisplayLabel falls back to the machine name when no label is set.
func (d FieldDefinition) DisplayLabel() string {
	if label := strings.TrimSpace(d.Label); label != "" {
		return label
	}
	return d.Name
}

// ValueKind tags a FieldValue.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindReference
	KindScalar
)

func (k ValueKind) String() string {
	switch k {
	case KindReference:
		return "reference"
	case KindScalar:
		return "scalar"
	default:
		return "none"
	}
}

// FieldValue is the first delta of a field: nothing, a reference to another
// entity, or a plain scalar.
type FieldValue struct {
	Kind       ValueKind
	TargetID   string
	TargetType string
	Scalar     string
}

// None returns an empty value.
func None() FieldValue { return FieldValue{Kind: KindNone} }

// Reference returns a value pointing at targetType/targetID.
func Reference(targetID, targetType string) FieldValue {
	return FieldValue{Kind: KindReference, TargetID: targetID, TargetType: targetType}
}

// Scalar returns a plain value.
func Scalar(value string) FieldValue {
	return FieldValue{Kind: KindScalar, Scalar: value}
}

// Target returns the referenced id when the value is a non-empty reference.
func (v FieldValue) Target() (string, bool) {
	if v.Kind != KindReference {
		return "", false
	}
	id := strings.TrimSpace(v.TargetID)
	return id, id != ""
}

// View is the read-only accessor the formatter uses for the entity being
// rendered and for loaded media items.
type View interface {
	EntityType() string
	Bundle() string
	FieldValue(name string) (FieldValue, bool)
	FieldDefinition(name string) (FieldDefinition, bool)
}

// File is a managed file entity.
type File struct {
	ID       string `json:"id" yaml:"id"`
	URI      string `json:"uri" yaml:"uri"`
	Filename string `json:"filename" yaml:"filename"`
}

// FieldMetadataProvider lists the ordered field definitions of a bundle.
type FieldMetadataProvider interface {
	FieldDefinitions(ctx context.Context, entityType, bundle string) ([]FieldDefinition, error)
}

// FileLoader loads file entities. A missing file is reported with ok=false.
type FileLoader interface {
	LoadFile(ctx context.Context, id string) (file File, ok bool, err error)
}

// MediaLoader loads media items with their ordered field definitions. A
// missing media item is reported with ok=false.
type MediaLoader interface {
	LoadMedia(ctx context.Context, id string) (media *Record, ok bool, err error)
}

// ImageFieldCandidates filters defs down to the fields an administrator may
// pick: image fields and media references, in definition order.
func ImageFieldCandidates(defs []FieldDefinition) []FieldDefinition {
	out := make([]FieldDefinition, 0, len(defs))
	for _, def := range defs {
		if def.IsImage() || def.IsMediaReference() {
			out = append(out, def)
		}
	}
	return out
}
