package form

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownElementType = errors.New("unknown element type")
	ErrDuplicateElementID = errors.New("duplicate element id")
	ErrMissingElementID   = errors.New("element id is required")
	ErrOptionsRequired    = errors.New("select and radio elements need at least one option")
	ErrOptionsNotAllowed  = errors.New("options are only allowed on select and radio elements")
	ErrEmptyForm          = errors.New("add at least one element before publishing")
	ErrInvalidTransition  = errors.New("form is not in a state that allows this operation")
)

// ValidationError carries per-element messages keyed by element id.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d field(s) failed validation", len(e.Fields))
}

// CheckElements enforces the schema invariants: known types, unique non-empty
// ids, and options present exactly on select and radio elements.
func CheckElements(elements []Element) error {
	seen := make(map[string]struct{}, len(elements))
	for _, el := range elements {
		if el.ID == "" {
			return ErrMissingElementID
		}
		if _, dup := seen[el.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateElementID, el.ID)
		}
		seen[el.ID] = struct{}{}

		if !el.Type.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownElementType, el.Type)
		}
		if el.Type.HasOptions() && len(el.Options) == 0 {
			return fmt.Errorf("%w: %s", ErrOptionsRequired, el.ID)
		}
		if !el.Type.HasOptions() && len(el.Options) > 0 {
			return fmt.Errorf("%w: %s", ErrOptionsNotAllowed, el.ID)
		}
	}
	return nil
}

// Normalize repairs elements coming from an untrusted generator: it assigns
// missing or duplicate ids, drops options where they are not allowed, fills
// defaults where they are required and clears empty validation blocks.
// Elements with unknown types are removed.
func Normalize(elements []Element) []Element {
	out := make([]Element, 0, len(elements))
	seen := make(map[string]struct{}, len(elements))
	for _, el := range elements {
		if !el.Type.Valid() {
			continue
		}
		el = el.Clone()
		if _, dup := seen[el.ID]; el.ID == "" || dup {
			el.ID = NewElementID()
		}
		seen[el.ID] = struct{}{}

		if el.Label == "" {
			el.Label = DefaultLabel(el.Type)
		}
		switch {
		case el.Type.HasOptions() && len(el.Options) == 0:
			el.Options = DefaultOptions()
		case !el.Type.HasOptions():
			el.Options = nil
		}
		if el.Validation.empty() {
			el.Validation = nil
		}
		out = append(out, el)
	}
	return out
}
