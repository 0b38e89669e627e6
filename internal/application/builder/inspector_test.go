package builder

import (
	"context"
	"testing"

	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestSelect(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())

	el, _ := s.Insert(form.TypeText, "")
	got, err := s.Select(el.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, el.ID, got.ID)
	assert.Equal(t, el.ID, s.Selected().ID)

	got, err = s.Select("unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Nil(t, s.Selected())
}

func TestUpdateElement_Fields(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())

	el, _ := s.Insert(form.TypeText, "")
	got, err := s.UpdateElement(el.ID, form.ElementPatch{
		Label:       strPtr("Full name"),
		Placeholder: strPtr("Jane Doe"),
		Required:    boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Full name", got.Label)
	assert.Equal(t, "Jane Doe", got.Placeholder)
	assert.True(t, got.Required)

	_, err = s.UpdateElement("missing", form.ElementPatch{Label: strPtr("x")})
	assert.ErrorIs(t, err, ErrElementNotFound)
}

func TestUpdateElement_Validation(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())

	text, _ := s.Insert(form.TypeText, "")
	area, _ := s.Insert(form.TypeTextarea, "")
	box, _ := s.Insert(form.TypeCheckbox, "")

	tests := []struct {
		name    string
		id      string
		patch   form.ValidationPatch
		want    *form.Validation
		wantErr error
	}{
		{
			name:  "length on text",
			id:    text.ID,
			patch: form.ValidationPatch{MinLength: intPtr(2), MaxLength: intPtr(10)},
			want:  &form.Validation{MinLength: 2, MaxLength: 10},
		},
		{
			name:  "pattern keeps length",
			id:    text.ID,
			patch: form.ValidationPatch{Pattern: strPtr(`^[a-z]+$`)},
			want:  &form.Validation{MinLength: 2, MaxLength: 10, Pattern: `^[a-z]+$`},
		},
		{
			name:    "min above max",
			id:      text.ID,
			patch:   form.ValidationPatch{MinLength: intPtr(20)},
			wantErr: ErrInvalidLengthRange,
		},
		{
			name:    "bad pattern",
			id:      text.ID,
			patch:   form.ValidationPatch{Pattern: strPtr(`([a-z`)},
			wantErr: ErrInvalidPattern,
		},
		{
			name:  "clearing everything drops the block",
			id:    text.ID,
			patch: form.ValidationPatch{MinLength: intPtr(0), MaxLength: intPtr(-3), Pattern: strPtr("")},
			want:  nil,
		},
		{
			name:  "length on textarea",
			id:    area.ID,
			patch: form.ValidationPatch{MaxLength: intPtr(500)},
			want:  &form.Validation{MaxLength: 500},
		},
		{
			name:    "pattern on textarea",
			id:      area.ID,
			patch:   form.ValidationPatch{Pattern: strPtr(`\d+`)},
			wantErr: ErrValidationNotApplicable,
		},
		{
			name:    "length on checkbox",
			id:      box.ID,
			patch:   form.ValidationPatch{MinLength: intPtr(1)},
			wantErr: ErrValidationNotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, _ := s.Snapshot()
			got, err := s.UpdateElement(tt.id, form.ElementPatch{Validation: &tt.patch})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				after, _ := s.Snapshot()
				assert.Equal(t, before.Elements, after.Elements)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Validation)
		})
	}
}

func TestOptions(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())

	sel, _ := s.Insert(form.TypeSelect, "")

	opts, err := s.AddOption(sel.ID, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Option 1", "Option 2", "Option 3", "Option 4"}, opts)

	opts, err = s.UpdateOption(sel.ID, 0, "Red")
	require.NoError(t, err)
	assert.Equal(t, "Red", opts[0])

	_, err = s.UpdateOption(sel.ID, 9, "x")
	assert.ErrorIs(t, err, ErrOptionIndex)

	for i := 0; i < 3; i++ {
		_, err = s.RemoveOption(sel.ID, 0)
		require.NoError(t, err)
	}
	opts, err = s.RemoveOption(sel.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Option 4"}, opts, "last option is kept")

	text, _ := s.Insert(form.TypeText, "")
	_, err = s.AddOption(text.ID, "x")
	assert.ErrorIs(t, err, ErrOptionsNotApplicable)
}
