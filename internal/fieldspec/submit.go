package fieldspec

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError reports a submit-protocol violation on one field.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Key, e.Message)
}

// Defaults seeds a form with each field's declared default.
func Defaults(fields []Field) map[string]any {
	form := make(map[string]any, len(fields))
	for _, f := range fields {
		if f.Default != nil {
			form[f.Key] = f.Default
		}
	}
	return form
}

// Submit applies the add-form submit protocol to a raw form and returns
// the composed row, in this order:
//  1. missing keys take their declared defaults,
//  2. boolean fields are coerced from their "true"/"false" string form,
//  3. date fields are parsed ("2006-01-02" or RFC 3339),
//  4. declared generators run over the composed form,
//  5. required fields are enforced (after generation, so derived fields
//     count).
// The input map is not mutated. Submit does not reorder or validate date
// pairs; the pair widget maintains that invariant as the values are set.
func Submit(fields []Field, form map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(form))
	for k, v := range form {
		out[k] = v
	}

	for _, f := range fields {
		if _, ok := out[f.Key]; !ok && f.Default != nil {
			out[f.Key] = f.Default
		}
	}

	for _, f := range fields {
		v, ok := out[f.Key]
		if !ok {
			continue
		}
		switch f.Kind {
		case KindBoolean:
			b, err := coerceBool(v)
			if err != nil {
				return nil, &ValidationError{Key: f.Key, Message: err.Error()}
			}
			out[f.Key] = b
		case KindDate:
			t, err := coerceDate(v)
			if err != nil {
				return nil, &ValidationError{Key: f.Key, Message: err.Error()}
			}
			if t == nil {
				delete(out, f.Key)
			} else {
				out[f.Key] = *t
			}
		}
	}

	for _, f := range fields {
		if f.Generate == nil {
			continue
		}
		if v, ok := f.Generate(out); ok {
			out[f.Key] = v
		}
	}

	for _, f := range fields {
		if !f.Required {
			continue
		}
		v, ok := out[f.Key]
		if !ok || v == nil {
			return nil, &ValidationError{Key: f.Key, Message: "required"}
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return nil, &ValidationError{Key: f.Key, Message: "required"}
		}
	}

	return out, nil
}

func coerceBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch b {
		case "true":
			return true, nil
		case "false", "":
			return false, nil
		}
	}
	return false, fmt.Errorf("not a boolean: %v", v)
}

func coerceDate(v any) (*time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return &d, nil
	case *time.Time:
		return d, nil
	case string:
		if d == "" {
			return nil, nil
		}
		if t, err := time.Parse("2006-01-02", d); err == nil {
			return &t, nil
		}
		if t, err := time.Parse(time.RFC3339, d); err == nil {
			return &t, nil
		}
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("not a date: %v", v)
}

// Str reads a trimmed string value out of a composed form.
func Str(form map[string]any, key string) string {
	if s, ok := form[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// StrPtr reads an optional string, nil when absent or blank.
func StrPtr(form map[string]any, key string) *string {
	if s := Str(form, key); s != "" {
		return &s
	}
	return nil
}

// Bool reads a coerced boolean value out of a composed form.
func Bool(form map[string]any, key string) bool {
	b, _ := form[key].(bool)
	return b
}

// Date reads an optional date value out of a composed form.
func Date(form map[string]any, key string) *time.Time {
	if t, ok := form[key].(time.Time); ok {
		return &t
	}
	return nil
}
