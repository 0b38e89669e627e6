package builder

import (
	"github.com/linskybing/formify-go/internal/domain/form"
)

// Progress is the completion of a preview.
type Progress struct {
	Filled int     `json:"filled"`
	Total  int     `json:"total"`
	Ratio  float64 `json:"ratio"`
}

// PreviewState is a read-only view of a preview.
type PreviewState struct {
	Values    form.Values       `json:"values"`
	Errors    map[string]string `json:"errors"`
	Progress  Progress          `json:"progress"`
	Submitted bool              `json:"submitted"`
}

// Preview renders a form for filling in. It works on its own copy of the
// elements and is not safe for concurrent use.
type Preview struct {
	elements  []form.Element
	values    form.Values
	errors    map[string]string
	submitted bool
}

func NewPreview(elements []form.Element) *Preview {
	return &Preview{
		elements: form.CloneElements(elements),
		values:   make(form.Values),
		errors:   make(map[string]string),
	}
}

func (p *Preview) element(id string) (form.Element, bool) {
	for _, el := range p.elements {
		if el.ID == id {
			return el, true
		}
	}
	return form.Element{}, false
}

// Set records a value and validates it, returning the message shown under
// the field ("" when valid).
func (p *Preview) Set(id string, v form.Value) (string, error) {
	el, ok := p.element(id)
	if !ok {
		return "", ErrElementNotFound
	}
	if v.Kind != form.KindFor(el.Type) {
		return "", form.ErrValueKind
	}

	p.values[id] = v
	p.submitted = false
	msg := form.Validate(el, &v)
	if msg == "" {
		delete(p.errors, id)
	} else {
		p.errors[id] = msg
	}
	return msg, nil
}

// Sync replaces the elements, dropping values and errors of elements that no
// longer exist.
func (p *Preview) Sync(elements []form.Element) {
	p.elements = form.CloneElements(elements)
	keep := make(map[string]struct{}, len(elements))
	for _, el := range elements {
		keep[el.ID] = struct{}{}
	}
	for id := range p.values {
		if _, ok := keep[id]; !ok {
			delete(p.values, id)
		}
	}
	for id := range p.errors {
		if _, ok := keep[id]; !ok {
			delete(p.errors, id)
		}
	}
}

func (p *Preview) Progress() Progress {
	pr := Progress{Total: len(p.elements)}
	for _, el := range p.elements {
		if v, ok := p.values[el.ID]; ok && v.Filled() {
			pr.Filled++
		}
	}
	if pr.Total > 0 {
		pr.Ratio = float64(pr.Filled) / float64(pr.Total)
	}
	return pr
}

// Submit validates every element. On success the preview is marked
// submitted; nothing is sent anywhere.
func (p *Preview) Submit() (map[string]string, bool) {
	p.errors = form.ValidateAll(p.elements, p.values)
	p.submitted = len(p.errors) == 0
	return copyErrors(p.errors), p.submitted
}

// Reset clears values, errors and the submitted flag.
func (p *Preview) Reset() {
	p.values = make(form.Values)
	p.errors = make(map[string]string)
	p.submitted = false
}

func (p *Preview) Values() form.Values {
	out := make(form.Values, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

func (p *Preview) State() PreviewState {
	return PreviewState{
		Values:    p.Values(),
		Errors:    copyErrors(p.errors),
		Progress:  p.Progress(),
		Submitted: p.submitted,
	}
}

func copyErrors(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// PreviewSet sets a value in the session's design-time preview.
func (s *Session) PreviewSet(id string, v form.Value) (PreviewState, error) {
	if err := s.lock(); err != nil {
		return PreviewState{}, err
	}
	defer s.mu.Unlock()

	if _, err := s.preview.Set(id, v); err != nil {
		return PreviewState{}, err
	}
	return s.preview.State(), nil
}

func (s *Session) PreviewSubmit() (PreviewState, bool, error) {
	if err := s.lock(); err != nil {
		return PreviewState{}, false, err
	}
	defer s.mu.Unlock()

	_, ok := s.preview.Submit()
	return s.preview.State(), ok, nil
}

func (s *Session) PreviewReset() (PreviewState, error) {
	if err := s.lock(); err != nil {
		return PreviewState{}, err
	}
	defer s.mu.Unlock()

	s.preview.Reset()
	return s.preview.State(), nil
}

func (s *Session) PreviewState() PreviewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview.State()
}
