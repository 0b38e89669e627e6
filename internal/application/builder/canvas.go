package builder

import (
	"fmt"

	"github.com/linskybing/formify-go/internal/domain/form"
)

// CanvasTarget is the drop target meaning "end of the canvas".
const CanvasTarget = "canvas"

// Insert drops a new element of type t. An empty or canvas target appends;
// an element id inserts before that element. Unknown targets append.
func (s *Session) Insert(t form.ElementType, dropTarget string) (form.Element, error) {
	if err := s.lock(); err != nil {
		return form.Element{}, err
	}
	defer s.mu.Unlock()

	if len(s.form.Elements) >= s.opts.maxElements() {
		msg := fmt.Sprintf("Maximum %d elements allowed", s.opts.maxElements())
		s.events.Publish(Event{Type: EventWarning, Message: msg})
		return form.Element{}, fmt.Errorf("%w: %s", ErrElementLimit, msg)
	}

	el, err := form.NewElement(t)
	if err != nil {
		return form.Element{}, err
	}

	idx := len(s.form.Elements)
	if dropTarget != "" && dropTarget != CanvasTarget {
		if i := s.form.IndexOf(dropTarget); i >= 0 {
			idx = i
		}
	}

	elements := make([]form.Element, 0, len(s.form.Elements)+1)
	elements = append(elements, s.form.Elements[:idx]...)
	elements = append(elements, el)
	elements = append(elements, s.form.Elements[idx:]...)
	s.form.Elements = elements

	s.changed()
	return el.Clone(), nil
}

// Reorder moves the source element to the target element's position.
func (s *Session) Reorder(sourceID, targetID string) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	from := s.form.IndexOf(sourceID)
	to := s.form.IndexOf(targetID)
	if from < 0 || to < 0 {
		return ErrElementNotFound
	}
	if from == to {
		return nil
	}

	s.form.Elements = move(s.form.Elements, from, to)
	s.changed()
	return nil
}

// move relocates elements[from] to index to, keeping the relative order of
// everything else.
func move(elements []form.Element, from, to int) []form.Element {
	out := make([]form.Element, 0, len(elements))
	moved := elements[from]
	for i, el := range elements {
		if i == from {
			continue
		}
		out = append(out, el)
	}
	out = append(out[:to], append([]form.Element{moved}, out[to:]...)...)
	return out
}

// Remove deletes an element and clears the selection if it was selected.
func (s *Session) Remove(id string) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	idx := s.form.IndexOf(id)
	if idx < 0 {
		return ErrElementNotFound
	}

	elements := make([]form.Element, 0, len(s.form.Elements)-1)
	elements = append(elements, s.form.Elements[:idx]...)
	elements = append(elements, s.form.Elements[idx+1:]...)
	s.form.Elements = elements
	if s.selected == id {
		s.selected = ""
	}

	s.changed()
	return nil
}

func (s *Session) SetTitle(title string) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.form.Title = title
	s.changed()
	return nil
}

func (s *Session) SetDescription(description string) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.form.Description = description
	s.changed()
	return nil
}
