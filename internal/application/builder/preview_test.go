package builder

import (
	"context"
	"testing"

	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewElements() []form.Element {
	return []form.Element{
		{ID: "name", Type: form.TypeText, Label: "Name", Required: true, Validation: &form.Validation{MinLength: 2}},
		{ID: "terms", Type: form.TypeCheckbox, Label: "Terms", Required: true},
		{ID: "color", Type: form.TypeRadio, Label: "Color", Options: []string{"Red", "Blue"}},
	}
}

func TestPreview_SetValidatesOnChange(t *testing.T) {
	p := NewPreview(previewElements())

	msg, err := p.Set("name", form.String("J"))
	require.NoError(t, err)
	assert.Equal(t, "Name must be at least 2 characters", msg)

	msg, err = p.Set("name", form.String("Jo"))
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Empty(t, p.State().Errors)

	_, err = p.Set("missing", form.String("x"))
	assert.ErrorIs(t, err, ErrElementNotFound)
	_, err = p.Set("terms", form.String("yes"))
	assert.ErrorIs(t, err, form.ErrValueKind)
}

func TestPreview_Progress(t *testing.T) {
	p := NewPreview(previewElements())
	assert.Equal(t, Progress{Total: 3}, p.Progress())

	_, _ = p.Set("name", form.String("Jo"))
	_, _ = p.Set("terms", form.Bool(false))
	pr := p.Progress()
	assert.Equal(t, 1, pr.Filled)
	assert.InDelta(t, 1.0/3.0, pr.Ratio, 1e-9)

	_, _ = p.Set("terms", form.Bool(true))
	_, _ = p.Set("color", form.String("Blue"))
	assert.Equal(t, Progress{Filled: 3, Total: 3, Ratio: 1}, p.Progress())

	assert.Equal(t, Progress{}, NewPreview(nil).Progress())
}

func TestPreview_SubmitAndReset(t *testing.T) {
	p := NewPreview(previewElements())

	errs, ok := p.Submit()
	assert.False(t, ok)
	assert.Equal(t, map[string]string{
		"name":  "Name is required",
		"terms": "Terms is required",
	}, errs)

	_, _ = p.Set("name", form.String("Jo"))
	_, _ = p.Set("terms", form.Bool(true))
	errs, ok = p.Submit()
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.True(t, p.State().Submitted)

	p.Reset()
	st := p.State()
	assert.False(t, st.Submitted)
	assert.Empty(t, st.Values)
	assert.Empty(t, st.Errors)
}

func TestPreview_SyncDropsRemovedElements(t *testing.T) {
	p := NewPreview(previewElements())
	_, _ = p.Set("name", form.String("J"))
	_, _ = p.Set("color", form.String("Red"))

	p.Sync(previewElements()[2:])
	st := p.State()
	assert.Equal(t, form.Values{"color": form.String("Red")}, st.Values)
	assert.Empty(t, st.Errors)
	assert.Equal(t, 1, st.Progress.Total)
}

func TestSessionPreview_FollowsSchema(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())

	el, _ := s.Insert(form.TypeText, "")
	st, err := s.PreviewSet(el.ID, form.String("hello"))
	require.NoError(t, err)
	assert.Equal(t, 1, st.Progress.Filled)

	require.NoError(t, s.Remove(el.ID))
	st = s.PreviewState()
	assert.Empty(t, st.Values)
	assert.Zero(t, st.Progress.Total)

	st, ok, err := s.PreviewSubmit()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, st.Submitted)

	st, err = s.PreviewReset()
	require.NoError(t, err)
	assert.False(t, st.Submitted)
}
