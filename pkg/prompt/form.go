package prompt

import (
	"context"
	"fmt"

	"github.com/goliatone/go-picturegroup/pkg/formatter"
	"github.com/goliatone/go-picturegroup/pkg/settings"
)

const selectPageSize = 12

// FillForm prompts for every control of form in weight order and returns the
// chosen values keyed by settings key. Select defaults come from the
// control's current value.
func FillForm(ctx context.Context, driver Driver, form formatter.Form) (settings.Settings, error) {
	if driver == nil {
		return nil, fmt.Errorf("prompt: driver is required")
	}

	out := make(settings.Settings, len(form.Elements))
	for _, el := range form.Sorted() {
		switch el.Type {
		case formatter.ControlSelect:
			value, err := askSelect(ctx, driver, el)
			if err != nil {
				return nil, err
			}
			out[el.Key] = value
		default:
			check := el.Check
			value, err := driver.Input(ctx, InputConfig{
				Message:   el.Title,
				Default:   el.DefaultValue,
				Help:      el.Description,
				Validator: check,
			})
			if err != nil {
				return nil, fmt.Errorf("prompt: %s: %w", el.Key, err)
			}
			out[el.Key] = value
		}
	}
	return out, nil
}

func askSelect(ctx context.Context, driver Driver, el formatter.FormElement) (string, error) {
	labels := make([]string, len(el.Options))
	defaultIndex := 0
	for i, opt := range el.Options {
		labels[i] = optionLabel(opt)
		if opt.Value == el.DefaultValue {
			defaultIndex = i
		}
	}

	idx, err := driver.Select(ctx, SelectConfig{
		Message:      el.Title,
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         el.Description,
		PageSize:     selectPageSize,
	})
	if err != nil {
		return "", fmt.Errorf("prompt: %s: %w", el.Key, err)
	}
	if idx < 0 || idx >= len(el.Options) {
		return "", fmt.Errorf("prompt: %s: %w", el.Key, formatter.ErrIllegalChoice)
	}
	return el.Options[idx].Value, nil
}

func optionLabel(opt formatter.Option) string {
	if opt.Value == "" || opt.Value == opt.Label {
		return opt.Label
	}
	return fmt.Sprintf("%s (%s)", opt.Label, opt.Value)
}
