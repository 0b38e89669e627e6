package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var ErrValueKind = errors.New("value does not match element type")

type ValueKind string

const (
	KindString ValueKind = "string"
	KindBool   ValueKind = "bool"
)

// Value is a submitted field value. The kind is fixed by the element type:
// checkboxes carry a bool, every other element a string.
type Value struct {
	Kind ValueKind
	Str  string
	Bool bool
}

func String(s string) Value { return Value{Kind: KindString, Str: s} }

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// KindFor returns the value kind accepted by elements of type t.
func KindFor(t ElementType) ValueKind {
	if t == TypeCheckbox {
		return KindBool
	}
	return KindString
}

// Filled reports whether the value counts towards completion.
func (v Value) Filled() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindString:
		return strings.TrimSpace(v.Str) != ""
	}
	return false
}

// Text renders the value for exports and notifications.
func (v Value) Text() string {
	if v.Kind == KindBool {
		if v.Bool {
			return "Yes"
		}
		return "No"
	}
	return v.Str
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindBool {
		return json.Marshal(v.Bool)
	}
	return json.Marshal(v.Str)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = Bool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrValueKind, string(data))
	}
	*v = String(s)
	return nil
}

// Values maps element ids to submitted values.
type Values map[string]Value

// Get returns the value for an element, or nil when absent.
func (vs Values) Get(id string) *Value {
	v, ok := vs[id]
	if !ok {
		return nil
	}
	return &v
}

// DecodeValues converts raw JSON values into typed values, checking each one
// against its element's type. Keys that do not name an element are dropped.
// Number elements also accept JSON numbers.
func DecodeValues(elements []Element, raw map[string]json.RawMessage) (Values, error) {
	out := make(Values, len(raw))
	for _, el := range elements {
		msg, ok := raw[el.ID]
		if !ok || string(msg) == "null" {
			continue
		}
		switch KindFor(el.Type) {
		case KindBool:
			var b bool
			if err := json.Unmarshal(msg, &b); err != nil {
				return nil, fmt.Errorf("%w: %s expects a boolean", ErrValueKind, el.ID)
			}
			out[el.ID] = Bool(b)
		default:
			var s string
			if err := json.Unmarshal(msg, &s); err == nil {
				out[el.ID] = String(s)
				continue
			}
			var n json.Number
			if el.Type == TypeNumber && json.Unmarshal(msg, &n) == nil {
				out[el.ID] = String(n.String())
				continue
			}
			return nil, fmt.Errorf("%w: %s expects a string", ErrValueKind, el.ID)
		}
	}
	return out, nil
}

// ValuesFromForm reads an HTML form post. Unchecked checkboxes are absent
// from a post and stay absent here.
func ValuesFromForm(elements []Element, form url.Values) Values {
	out := make(Values)
	for _, el := range elements {
		raw, ok := form[el.ID]
		if !ok || len(raw) == 0 {
			continue
		}
		if KindFor(el.Type) == KindBool {
			checked := raw[0] == "on"
			if b, err := strconv.ParseBool(raw[0]); err == nil {
				checked = b
			}
			out[el.ID] = Bool(checked)
			continue
		}
		out[el.ID] = String(raw[0])
	}
	return out
}
