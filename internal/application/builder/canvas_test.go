package builder

import (
	"context"
	"testing"

	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(f *form.Form) []string {
	out := make([]string, 0, len(f.Elements))
	for _, el := range f.Elements {
		out = append(out, el.ID)
	}
	return out
}

func TestNewSession_Draft(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())

	f, selected := s.Snapshot()
	assert.Equal(t, DefaultTitle, f.Title)
	assert.Equal(t, form.StatusDraft, f.Status)
	assert.Empty(t, f.Elements)
	assert.False(t, f.HasIdentity())
	assert.Empty(t, selected)
	assert.NotEmpty(t, s.ID)
}

func TestInsert_AppendsAndInsertsBeforeTarget(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())

	a, err := s.Insert(form.TypeText, CanvasTarget)
	require.NoError(t, err)
	b, err := s.Insert(form.TypeEmail, "")
	require.NoError(t, err)
	c, err := s.Insert(form.TypeSelect, a.ID)
	require.NoError(t, err)
	d, err := s.Insert(form.TypeCheckbox, "no-such-element")
	require.NoError(t, err)

	f, _ := s.Snapshot()
	assert.Equal(t, []string{c.ID, a.ID, b.ID, d.ID}, ids(f))
	assert.Equal(t, "Select Field", c.Label)
	assert.Equal(t, form.DefaultOptions(), c.Options)
}

func TestInsert_UnknownType(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())

	_, err := s.Insert(form.ElementType("slider"), "")
	assert.ErrorIs(t, err, ErrUnknownElementType)
	f, _ := s.Snapshot()
	assert.Empty(t, f.Elements)
}

func TestInsert_ElementLimit(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())
	events, cancel := s.Subscribe()
	defer cancel()

	for i := 0; i < 5; i++ {
		_, err := s.Insert(form.TypeText, "")
		require.NoError(t, err)
	}
	_, err := s.Insert(form.TypeText, "")
	require.ErrorIs(t, err, ErrElementLimit)
	assert.Contains(t, err.Error(), "Maximum 5 elements allowed")

	f, _ := s.Snapshot()
	assert.Len(t, f.Elements, 5)

	var warned bool
	for len(events) > 0 {
		if e := <-events; e.Type == EventWarning {
			warned = true
			assert.Equal(t, "Maximum 5 elements allowed", e.Message)
		}
	}
	assert.True(t, warned)
}

func TestReorder(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())

	var all []string
	for i := 0; i < 4; i++ {
		el, err := s.Insert(form.TypeText, "")
		require.NoError(t, err)
		all = append(all, el.ID)
	}

	require.NoError(t, s.Reorder(all[0], all[2]))
	f, _ := s.Snapshot()
	assert.Equal(t, []string{all[1], all[2], all[0], all[3]}, ids(f))

	require.NoError(t, s.Reorder(all[3], all[1]))
	f, _ = s.Snapshot()
	assert.Equal(t, []string{all[3], all[1], all[2], all[0]}, ids(f))

	require.NoError(t, s.Reorder(all[2], all[2]))
	assert.ErrorIs(t, s.Reorder("missing", all[0]), ErrElementNotFound)
}

func TestReorder_InverseRestoresOrder(t *testing.T) {
	const n = 5
	for from := 0; from < n; from++ {
		for to := 0; to < n; to++ {
			s := newTestSession(newFakeGateway(), nil)
			var original []string
			for i := 0; i < n; i++ {
				el, err := s.Insert(form.TypeText, "")
				require.NoError(t, err)
				original = append(original, el.ID)
			}

			require.NoError(t, s.Reorder(original[from], original[to]))
			f, _ := s.Snapshot()
			moved := ids(f)
			require.Equal(t, original[from], moved[to], "move %d->%d", from, to)

			// The element now at the old index marks where to move it back.
			require.NoError(t, s.Reorder(original[from], moved[from]))
			f, _ = s.Snapshot()
			assert.Equal(t, original, ids(f), "move %d->%d and back", from, to)

			s.Close(context.Background())
		}
	}
}

func TestInsert_DefaultElementLimit(t *testing.T) {
	s := NewSession(owner, nil, newFakeGateway(), Options{})
	defer s.Close(context.Background())

	for i := 0; i < 50; i++ {
		_, err := s.Insert(form.TypeText, "")
		require.NoError(t, err, "element %d", i+1)
	}
	_, err := s.Insert(form.TypeText, "")
	require.ErrorIs(t, err, ErrElementLimit)
	assert.Contains(t, err.Error(), "Maximum 50 elements allowed")

	f, _ := s.Snapshot()
	assert.Len(t, f.Elements, 50)
}

func TestRemove_ClearsSelection(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())

	a, _ := s.Insert(form.TypeText, "")
	b, _ := s.Insert(form.TypeText, "")
	_, err := s.Select(a.ID)
	require.NoError(t, err)

	require.NoError(t, s.Remove(a.ID))
	f, selected := s.Snapshot()
	assert.Equal(t, []string{b.ID}, ids(f))
	assert.Empty(t, selected)
	assert.ErrorIs(t, s.Remove(a.ID), ErrElementNotFound)
}

func TestHeader(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())

	require.NoError(t, s.SetTitle("Contact"))
	require.NoError(t, s.SetDescription("Say hi"))
	f, _ := s.Snapshot()
	assert.Equal(t, "Contact", f.Title)
	assert.Equal(t, "Say hi", f.Description)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	defer s.Close(context.Background())

	el, _ := s.Insert(form.TypeRadio, "")
	f, _ := s.Snapshot()
	f.Elements[0].Options[0] = "mutated"
	f.Title = "mutated"

	again, _ := s.Snapshot()
	assert.Equal(t, "Option 1", again.Elements[0].Options[0])
	assert.Equal(t, DefaultTitle, again.Title)
	assert.Equal(t, el.ID, again.Elements[0].ID)
}

func TestEdits_SyncInBackground(t *testing.T) {
	gw := newFakeGateway()
	stored := &form.Form{ID: "form-x", OwnerID: owner.UserID, Title: "Saved", Status: form.StatusDraft}
	gw.put(stored)

	s := newTestSession(gw, stored)
	defer s.Close(context.Background())

	_, err := s.Insert(form.TypeText, "")
	require.NoError(t, err)
	require.NoError(t, s.SetTitle("Renamed"))
	require.NoError(t, s.outbox.Flush(context.Background()))

	assert.Equal(t, 2, gw.updateCount())
	got := gw.stored("form-x")
	assert.Equal(t, "Renamed", got.Title)
	assert.Len(t, got.Elements, 1)
	assert.False(t, s.SyncStatus().Stale)
}

func TestEdits_WithoutIdentityStayLocal(t *testing.T) {
	gw := newFakeGateway()
	s := newTestSession(gw, nil)
	defer s.Close(context.Background())

	_, err := s.Insert(form.TypeText, "")
	require.NoError(t, err)
	require.NoError(t, s.outbox.Flush(context.Background()))
	assert.Zero(t, gw.updateCount())
	assert.Zero(t, s.SyncStatus().Issued)
}

func TestClosedSession(t *testing.T) {
	s := newTestSession(newFakeGateway(), nil)
	s.Close(context.Background())

	_, err := s.Insert(form.TypeText, "")
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, s.SetTitle("x"), ErrSessionClosed)
}
