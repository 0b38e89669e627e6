package builder

import (
	"fmt"

	"github.com/linskybing/formify-go/internal/domain/form"
)

// Select marks an element as the inspector's target. An empty or unknown id
// clears the selection.
func (s *Session) Select(id string) (*form.Element, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	s.selected = ""
	var selected *form.Element
	if idx := s.form.IndexOf(id); idx >= 0 {
		s.selected = id
		el := s.form.Elements[idx].Clone()
		selected = &el
	}
	s.events.Publish(Event{Type: EventSelection, SelectedID: s.selected})
	return selected, nil
}

// Selected returns the selected element, or nil.
func (s *Session) Selected() *form.Element {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.form.IndexOf(s.selected)
	if idx < 0 {
		return nil
	}
	el := s.form.Elements[idx].Clone()
	return &el
}

// UpdateElement merges a partial edit into one element. The patch is applied
// to a copy first, so a rejected patch changes nothing.
func (s *Session) UpdateElement(id string, patch form.ElementPatch) (form.Element, error) {
	if err := s.lock(); err != nil {
		return form.Element{}, err
	}
	defer s.mu.Unlock()

	idx := s.form.IndexOf(id)
	if idx < 0 {
		return form.Element{}, ErrElementNotFound
	}

	el := s.form.Elements[idx].Clone()
	if patch.Label != nil {
		el.Label = *patch.Label
	}
	if patch.Placeholder != nil {
		el.Placeholder = *patch.Placeholder
	}
	if patch.Required != nil {
		el.Required = *patch.Required
	}
	if patch.Validation != nil {
		v, err := mergeValidation(el.Type, el.Validation, *patch.Validation)
		if err != nil {
			return form.Element{}, err
		}
		el.Validation = v
	}

	s.form.Elements[idx] = el
	s.changed()
	return el.Clone(), nil
}

func mergeValidation(t form.ElementType, current *form.Validation, patch form.ValidationPatch) (*form.Validation, error) {
	v := form.Validation{}
	if current != nil {
		v = *current
	}

	if patch.MinLength != nil || patch.MaxLength != nil {
		if !t.SupportsLength() {
			return nil, fmt.Errorf("%w: length on %s", ErrValidationNotApplicable, t)
		}
		if patch.MinLength != nil {
			v.MinLength = max(*patch.MinLength, 0)
		}
		if patch.MaxLength != nil {
			v.MaxLength = max(*patch.MaxLength, 0)
		}
		if v.MinLength > 0 && v.MaxLength > 0 && v.MinLength > v.MaxLength {
			return nil, ErrInvalidLengthRange
		}
	}

	if patch.Pattern != nil {
		if !t.SupportsPattern() {
			return nil, fmt.Errorf("%w: pattern on %s", ErrValidationNotApplicable, t)
		}
		pattern := *patch.Pattern
		if pattern != "" && !form.PatternCompiles(pattern) {
			return nil, ErrInvalidPattern
		}
		v.Pattern = pattern
	}

	if v.MinLength == 0 && v.MaxLength == 0 && v.Pattern == "" {
		return nil, nil
	}
	return &v, nil
}

func (s *Session) optionTarget(id string) (int, error) {
	idx := s.form.IndexOf(id)
	if idx < 0 {
		return -1, ErrElementNotFound
	}
	if !s.form.Elements[idx].Type.HasOptions() {
		return -1, ErrOptionsNotApplicable
	}
	return idx, nil
}

// AddOption appends an option. An empty value gets the next default label.
func (s *Session) AddOption(id, value string) ([]string, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	idx, err := s.optionTarget(id)
	if err != nil {
		return nil, err
	}

	el := &s.form.Elements[idx]
	if value == "" {
		value = fmt.Sprintf("Option %d", len(el.Options)+1)
	}
	el.Options = append(append([]string(nil), el.Options...), value)

	s.changed()
	return append([]string(nil), el.Options...), nil
}

func (s *Session) UpdateOption(id string, i int, value string) ([]string, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	idx, err := s.optionTarget(id)
	if err != nil {
		return nil, err
	}

	el := &s.form.Elements[idx]
	if i < 0 || i >= len(el.Options) {
		return nil, ErrOptionIndex
	}
	opts := append([]string(nil), el.Options...)
	opts[i] = value
	el.Options = opts

	s.changed()
	return append([]string(nil), el.Options...), nil
}

// RemoveOption deletes an option. Removing the only remaining option is a
// no-op so select and radio elements never end up empty.
func (s *Session) RemoveOption(id string, i int) ([]string, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	idx, err := s.optionTarget(id)
	if err != nil {
		return nil, err
	}

	el := &s.form.Elements[idx]
	if i < 0 || i >= len(el.Options) {
		return nil, ErrOptionIndex
	}
	if len(el.Options) == 1 {
		return append([]string(nil), el.Options...), nil
	}

	opts := make([]string, 0, len(el.Options)-1)
	opts = append(opts, el.Options[:i]...)
	opts = append(opts, el.Options[i+1:]...)
	el.Options = opts

	s.changed()
	return append([]string(nil), el.Options...), nil
}
