package form

import (
	"strings"

	"github.com/google/uuid"
)

// PaletteItem is one draggable element token.
type PaletteItem struct {
	Type  ElementType `json:"type"`
	Label string      `json:"label"`
}

var palette = []PaletteItem{
	{Type: TypeText, Label: "Text Input"},
	{Type: TypeEmail, Label: "Email Input"},
	{Type: TypeTextarea, Label: "Text Area"},
	{Type: TypeSelect, Label: "Dropdown"},
	{Type: TypeRadio, Label: "Radio Group"},
	{Type: TypeCheckbox, Label: "Checkbox"},
	{Type: TypeNumber, Label: "Number Input"},
}

// Palette lists the element types that can be dropped on a canvas.
func Palette() []PaletteItem {
	return append([]PaletteItem(nil), palette...)
}

// NewElementID returns a fresh element id.
func NewElementID() string {
	return "element-" + uuid.NewString()
}

// DefaultLabel derives the label of a freshly dropped element, e.g. "Text Field".
func DefaultLabel(t ElementType) string {
	s := string(t)
	if s == "" {
		return "Field"
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Field"
}

// DefaultOptions is the option list given to new select and radio elements.
func DefaultOptions() []string {
	return []string{"Option 1", "Option 2", "Option 3"}
}

// NewElement builds the element created by dropping a palette token.
func NewElement(t ElementType) (Element, error) {
	if !t.Valid() {
		return Element{}, ErrUnknownElementType
	}
	el := Element{
		ID:          NewElementID(),
		Type:        t,
		Label:       DefaultLabel(t),
		Placeholder: "Enter " + string(t),
	}
	if t.HasOptions() {
		el.Options = DefaultOptions()
	}
	return el, nil
}
