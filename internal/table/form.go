package table

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Input selects how a form field is rendered and read.
type Input int

const (
	InputText Input = iota
	InputEmail
	InputCheckbox
	InputMultiSelect
)

// Field declares one form input.
type Field struct {
	Name     string
	Label    string
	Input    Input
	Required bool
	// Options restricts multi-select values.
	Options []string
}

// Stamp carries the values synthesized at submit time.
type Stamp struct {
	ID    string
	Actor string
	Now   time.Time
}

// Choice is one option of a multi-select input.
type Choice struct {
	Value    string
	Selected bool
}

// InputState is the render model of one field.
type InputState struct {
	Field
	Value   string
	Checked bool
	Choices []Choice
	Error   string
}

// Kind names the HTML control used for the field.
func (s InputState) Kind() string {
	switch s.Input {
	case InputEmail:
		return "email"
	case InputCheckbox:
		return "checkbox"
	case InputMultiSelect:
		return "multiselect"
	default:
		return "text"
	}
}

// Form is the add-record modal. It validates required fields and builds a
// record on success; it never touches a store.
type Form[T Record] struct {
	fields   []Field
	build    func(url.Values, Stamp) T
	validate *validator.Validate

	open   bool
	values url.Values
	errors map[string]string
}

// NewForm builds a closed form over fields.
func NewForm[T Record](fields []Field, build func(url.Values, Stamp) T) *Form[T] {
	v := validator.New()
	// notblank treats whitespace-only input as empty.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Form[T]{
		fields:   slices.Clone(fields),
		build:    build,
		validate: v,
	}
}

// Open shows an empty form.
func (f *Form[T]) Open() {
	f.open = true
	f.values = url.Values{}
	f.errors = nil
}

// Cancel closes the form without emitting anything.
func (f *Form[T]) Cancel() {
	f.open = false
	f.values = nil
	f.errors = nil
}

// IsOpen reports whether the form is shown.
func (f *Form[T]) IsOpen() bool {
	return f.open
}

// Errors returns the field errors of the last rejected submit.
func (f *Form[T]) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Submit validates values. When a required field is blank the form stays
// open, keeps the submitted values and reports false. Otherwise the record is
// built with stamp, the form closes and the record is returned. Submitting a
// closed form emits nothing.
func (f *Form[T]) Submit(values url.Values, stamp Stamp) (T, bool) {
	var zero T
	if !f.open {
		return zero, false
	}
	clean := f.sanitize(values)
	if errs := f.check(values, clean); len(errs) > 0 {
		f.values = clean
		f.errors = errs
		return zero, false
	}
	rec := f.build(clean, stamp)
	f.Cancel()
	return rec, true
}

// Inputs returns the render model for every field.
func (f *Form[T]) Inputs() []InputState {
	states := make([]InputState, 0, len(f.fields))
	for _, field := range f.fields {
		state := InputState{Field: field, Error: f.errors[field.Name]}
		switch field.Input {
		case InputCheckbox:
			state.Checked = Checked(f.values, field.Name)
		case InputMultiSelect:
			picked := f.values[field.Name]
			for _, opt := range field.Options {
				state.Choices = append(state.Choices, Choice{Value: opt, Selected: slices.Contains(picked, opt)})
			}
		default:
			state.Value = f.values.Get(field.Name)
		}
		states = append(states, state)
	}
	return states
}

func (f *Form[T]) sanitize(values url.Values) url.Values {
	clean := url.Values{}
	for _, field := range f.fields {
		switch field.Input {
		case InputMultiSelect:
			var picked []string
			for _, v := range values[field.Name] {
				v = strings.TrimSpace(v)
				if v == "" || slices.Contains(picked, v) {
					continue
				}
				if len(field.Options) > 0 && !slices.Contains(field.Options, v) {
					continue
				}
				picked = append(picked, v)
			}
			if len(picked) > 0 {
				clean[field.Name] = picked
			}
		case InputCheckbox:
			if Checked(values, field.Name) {
				clean.Set(field.Name, "on")
			}
		default:
			if v := strings.TrimSpace(values.Get(field.Name)); v != "" {
				clean.Set(field.Name, v)
			}
		}
	}
	return clean
}

// check validates the raw submission. Text inputs must hold a non-blank
// value; multi-selects must keep at least one known choice after clean.
func (f *Form[T]) check(raw, clean url.Values) map[string]string {
	errs := make(map[string]string)
	for _, field := range f.fields {
		if !field.Required {
			continue
		}
		var err error
		switch field.Input {
		case InputCheckbox:
			continue
		case InputMultiSelect:
			err = f.validate.Var(clean[field.Name], "min=1,dive,notblank")
		default:
			err = f.validate.Var(raw.Get(field.Name), "notblank")
		}
		if err != nil {
			errs[field.Name] = fmt.Sprintf("%s is required", field.Label)
		}
	}
	return errs
}

// Checked reads a checkbox value.
func Checked(values url.Values, name string) bool {
	switch strings.ToLower(strings.TrimSpace(values.Get(name))) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
