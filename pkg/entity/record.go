package entity

// Record is an in-memory View with explicitly ordered field definitions.
type Record struct {
	ID          string
	Type        string
	BundleName  string
	Definitions []FieldDefinition
	Values      map[string]FieldValue
}

var _ View = (*Record)(nil)

// NewRecord builds a record for entityType/bundle with defs in order.
func NewRecord(id, entityType, bundle string, defs ...FieldDefinition) *Record {
	return &Record{
		ID:          id,
		Type:        entityType,
		BundleName:  bundle,
		Definitions: append([]FieldDefinition(nil), defs...),
		Values:      make(map[string]FieldValue),
	}
}

// Set stores value for field and returns the record for chaining.
func (r *Record) Set(field string, value FieldValue) *Record {
	if r.Values == nil {
		r.Values = make(map[string]FieldValue)
	}
	r.Values[field] = value
	return r
}

func (r *Record) EntityType() string {
	if r == nil {
		return ""
	}
	return r.Type
}

func (r *Record) Bundle() string {
	if r == nil {
		return ""
	}
	return r.BundleName
}

// FieldValue returns the stored value. Fields without a value report false.
func (r *Record) FieldValue(name string) (FieldValue, bool) {
	if r == nil {
		return None(), false
	}
	value, ok := r.Values[name]
	if !ok || value.Kind == KindNone {
		return None(), false
	}
	return value, true
}

func (r *Record) FieldDefinition(name string) (FieldDefinition, bool) {
	if r == nil {
		return FieldDefinition{}, false
	}
	for _, def := range r.Definitions {
		if def.Name == name {
			return def, true
		}
	}
	return FieldDefinition{}, false
}

// FieldDefinitions returns the definitions in their declared order.
func (r *Record) FieldDefinitions() []FieldDefinition {
	if r == nil {
		return nil
	}
	return append([]FieldDefinition(nil), r.Definitions...)
}
