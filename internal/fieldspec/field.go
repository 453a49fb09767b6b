// Package fieldspec is the single source of truth for the data-entry
// surfaces: one field specification drives the filter drawer, the add
// form and the read-only detail view on the client, and the submit
// coercion/validation on the server. Fields are a tagged union over Kind
// rather than overlapping isInput/isSelect flags, so consumers dispatch
// with a switch.
package fieldspec

// Kind discriminates the field variants.
type Kind string

const (
	KindText    Kind = "text"
	KindSelect  Kind = "select"
	KindBoolean Kind = "boolean"
	KindDate    Kind = "date"
	KindFile    Kind = "file"
)

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Pair links the two halves of a date range. Both fields of a pair carry
// the same Pair value; the linking rules live in datepair.go.
type Pair struct {
	StartKey string `json:"start_key"`
	EndKey   string `json:"end_key"`
}

// GenerateFunc derives a field value from the rest of the form at submit
// time. Returning false leaves the field untouched.
type GenerateFunc func(form map[string]any) (any, bool)

// Field describes one form/table field. Only the members matching Kind
// are meaningful: Options for selects, Pair for paired dates. Generate is
// server-side only and never serialized.
type Field struct {
	Key         string       `json:"key"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder,omitempty"`
	Kind        Kind         `json:"kind"`
	Required    bool         `json:"required"`
	Options     []Option     `json:"options,omitempty"`
	Default     any          `json:"default,omitempty"`
	Pair        *Pair        `json:"pair,omitempty"`
	Generate    GenerateFunc `json:"-"`
}
