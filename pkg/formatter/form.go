package formatter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-picturegroup/pkg/settings"
)

// Form control types.
const (
	ControlSelect    = "select"
	ControlTextfield = "textfield"
)

// ErrIllegalChoice reports a select value outside the offered options.
var ErrIllegalChoice = errors.New("formatter: illegal choice")

// ErrInvalidValue reports a text value rejected by its validator.
var ErrInvalidValue = errors.New("formatter: invalid value")

// Option is one entry of a select control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormElement is a settings form control keyed by its settings key.
type FormElement struct {
	Key          string   `json:"key"`
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Options      []Option `json:"options,omitempty"`
	DefaultValue string   `json:"default_value"`
	Weight       int      `json:"weight"`
	Description  string   `json:"description,omitempty"`

	validate func(string) error
}

// Form is the ordered list of settings controls.
type Form struct {
	Elements []FormElement `json:"elements"`
}

// Element returns the control stored under key.
func (f Form) Element(key string) (FormElement, bool) {
	for _, el := range f.Elements {
		if el.Key == key {
			return el, true
		}
	}
	return FormElement{}, false
}

// Keys returns the control keys in form order.
func (f Form) Keys() []string {
	keys := make([]string, 0, len(f.Elements))
	for _, el := range f.Elements {
		keys = append(keys, el.Key)
	}
	return keys
}

// Sorted returns the controls ordered by weight, keeping form order for ties.
func (f Form) Sorted() []FormElement {
	out := append([]FormElement(nil), f.Elements...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight < out[j].Weight
	})
	return out
}

// Defaults returns the current default values keyed by settings key.
func (f Form) Defaults() settings.Settings {
	out := make(settings.Settings, len(f.Elements))
	for _, el := range f.Elements {
		out[el.Key] = el.DefaultValue
	}
	return out
}

// Validate checks submitted values: select values must be offered options and
// text values must pass their validators. Keys not present in the form are
// ignored.
func (f Form) Validate(values settings.Settings) error {
	var errs []error
	for _, el := range f.Elements {
		value, ok := values[el.Key]
		if !ok {
			continue
		}
		if err := el.Check(value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Check validates a single submitted value for the control.
func (e FormElement) Check(value string) error {
	switch e.Type {
	case ControlSelect:
		for _, opt := range e.Options {
			if opt.Value == value {
				return nil
			}
		}
		return fmt.Errorf("%w: %q for %s", ErrIllegalChoice, value, e.Key)
	default:
		if e.validate == nil {
			return nil
		}
		return e.validate(value)
	}
}

func validateClasses(value string) error {
	value = strings.TrimSpace(value)
	if value == "" || validClassList.MatchString(value) {
		return nil
	}
	return fmt.Errorf("%w: the css classes %q contain invalid characters", ErrInvalidValue, value)
}

func validateID(value string) error {
	value = strings.TrimSpace(value)
	if value == "" || validID.MatchString(value) {
		return nil
	}
	return fmt.Errorf("%w: the id %q contains invalid characters", ErrInvalidValue, value)
}
