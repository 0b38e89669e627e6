package builder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_EmptyForm(t *testing.T) {
	gw := newFakeGateway()
	s := newTestSession(gw, nil)
	defer s.Close(context.Background())

	_, err := s.Publish(context.Background(), form.PublishSettings{})
	assert.ErrorIs(t, err, ErrEmptyForm)
	f, _ := s.Snapshot()
	assert.Equal(t, form.StatusDraft, f.Status)
	assert.False(t, f.HasIdentity())
}

func TestPublish_CreatesDraftFirst(t *testing.T) {
	gw := newFakeGateway()
	s := newTestSession(gw, nil)
	defer s.Close(context.Background())
	events, cancel := s.Subscribe()
	defer cancel()

	_, err := s.Insert(form.TypeText, "")
	require.NoError(t, err)

	out, err := s.Publish(context.Background(), form.PublishSettings{CollectEmails: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "form-1", out.ID)
	assert.Equal(t, form.StatusPublished, out.Status)
	require.NotNil(t, out.PublishedAt)
	assert.Equal(t, "https://forms.example.com/forms/form-1", out.ShareURL)
	assert.Contains(t, out.EmbedCode, `src="https://forms.example.com/forms/form-1?embed=true"`)
	assert.True(t, out.CollectEmails)
	assert.True(t, out.AllowAnonymous)

	assert.Equal(t, form.StatusPublished, gw.stored("form-1").Status)

	var published bool
	for len(events) > 0 {
		if e := <-events; e.Type == EventPublished {
			published = true
		}
	}
	assert.True(t, published)
}

func TestPublish_GatewayFailureKeepsStatus(t *testing.T) {
	gw := newFakeGateway()
	gw.failPublish = errGatewayDown
	s := newTestSession(gw, nil)
	defer s.Close(context.Background())

	_, _ = s.Insert(form.TypeText, "")
	_, err := s.Publish(context.Background(), form.PublishSettings{})
	assert.ErrorIs(t, err, errGatewayDown)

	f, _ := s.Snapshot()
	assert.Equal(t, form.StatusDraft, f.Status)
	assert.Empty(t, f.ShareURL)
	assert.True(t, f.HasIdentity(), "draft created before publishing stays created")
}

func TestPublish_RetriesStaleSync(t *testing.T) {
	gw := newFakeGateway()
	stored := &form.Form{ID: "form-s", OwnerID: owner.UserID, Title: "T", Status: form.StatusDraft}
	gw.put(stored)
	s := newTestSession(gw, stored)
	defer s.Close(context.Background())

	gw.setFailUpdate(errGatewayDown)
	_, err := s.Insert(form.TypeText, "")
	require.NoError(t, err)
	require.NoError(t, s.outbox.Flush(context.Background()))
	require.True(t, s.SyncStatus().Stale)

	gw.setFailUpdate(nil)
	out, err := s.Publish(context.Background(), form.PublishSettings{})
	require.NoError(t, err)
	assert.Equal(t, form.StatusPublished, out.Status)
	assert.Len(t, gw.stored("form-s").Elements, 1)
	assert.False(t, s.SyncStatus().Stale)
}

func TestPublish_SyncStillFailing(t *testing.T) {
	gw := newFakeGateway()
	stored := &form.Form{ID: "form-s", OwnerID: owner.UserID, Title: "T", Status: form.StatusDraft}
	gw.put(stored)
	s := newTestSession(gw, stored)
	defer s.Close(context.Background())

	gw.setFailUpdate(errGatewayDown)
	_, _ = s.Insert(form.TypeText, "")

	_, err := s.Publish(context.Background(), form.PublishSettings{})
	assert.ErrorIs(t, err, ErrSyncFailed)
	f, _ := s.Snapshot()
	assert.Equal(t, form.StatusDraft, f.Status)
}

func TestUnpublish(t *testing.T) {
	gw := newFakeGateway()
	s := newTestSession(gw, nil)
	defer s.Close(context.Background())

	_, err := s.Unpublish(context.Background())
	assert.ErrorIs(t, err, ErrNoIdentity)

	_, _ = s.Insert(form.TypeText, "")
	_, err = s.Save(context.Background())
	require.NoError(t, err)

	_, err = s.Unpublish(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)

	published, err := s.Publish(context.Background(), form.PublishSettings{})
	require.NoError(t, err)

	out, err := s.Unpublish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, form.StatusUnpublished, out.Status)
	assert.Equal(t, published.ShareURL, out.ShareURL)
	assert.Equal(t, published.EmbedCode, out.EmbedCode)
	assert.Equal(t, form.StatusUnpublished, gw.stored(out.ID).Status)

	again, err := s.Publish(context.Background(), form.PublishSettings{})
	require.NoError(t, err)
	assert.Equal(t, form.StatusPublished, again.Status)
}

func TestSave(t *testing.T) {
	t.Run("untouched draft", func(t *testing.T) {
		s := newTestSession(newFakeGateway(), nil)
		defer s.Close(context.Background())
		_, err := s.Save(context.Background())
		assert.ErrorIs(t, err, ErrNothingToSave)
	})

	t.Run("blank title", func(t *testing.T) {
		s := newTestSession(newFakeGateway(), nil)
		defer s.Close(context.Background())
		_, _ = s.Insert(form.TypeText, "")
		require.NoError(t, s.SetTitle("   "))
		_, err := s.Save(context.Background())
		assert.ErrorIs(t, err, ErrNothingToSave)
	})

	t.Run("titled empty draft is created", func(t *testing.T) {
		gw := newFakeGateway()
		s := newTestSession(gw, nil)
		defer s.Close(context.Background())
		require.NoError(t, s.SetTitle("Feedback"))
		out, err := s.Save(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "form-1", out.ID)
		assert.Equal(t, "Feedback", gw.stored("form-1").Title)
	})

	t.Run("create failure", func(t *testing.T) {
		gw := newFakeGateway()
		gw.failCreate = errGatewayDown
		s := newTestSession(gw, nil)
		defer s.Close(context.Background())
		_, _ = s.Insert(form.TypeText, "")
		_, err := s.Save(context.Background())
		assert.ErrorIs(t, err, errGatewayDown)
		f, _ := s.Snapshot()
		assert.False(t, f.HasIdentity())
	})

	t.Run("existing form waits for sync", func(t *testing.T) {
		gw := newFakeGateway()
		stored := &form.Form{ID: "form-e", OwnerID: owner.UserID, Title: "T", Status: form.StatusDraft}
		gw.put(stored)
		s := newTestSession(gw, stored)
		defer s.Close(context.Background())

		require.NoError(t, s.SetDescription("updated"))
		_, err := s.Save(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "updated", gw.stored("form-e").Description)

		gw.setFailUpdate(errGatewayDown)
		_, err = s.Save(context.Background())
		assert.True(t, errors.Is(err, ErrSyncFailed))
	})
}

// cleaningGateway strips markup on create the way the form service does.
type cleaningGateway struct {
	*fakeGateway
}

func stripTags(s string) string {
	r := strings.NewReplacer("<b>", "", "</b>", "", "<i>", "", "</i>", "")
	return r.Replace(s)
}

func (g cleaningGateway) CreateForm(ctx context.Context, p session.Principal, in form.CreateFormDTO) (*form.Form, error) {
	in.Title = stripTags(in.Title)
	in.Description = stripTags(in.Description)
	in.Elements = form.CloneElements(in.Elements)
	for i := range in.Elements {
		in.Elements[i].Label = stripTags(in.Elements[i].Label)
	}
	return g.fakeGateway.CreateForm(ctx, p, in)
}

func TestSave_AdoptsStoredText(t *testing.T) {
	gw := cleaningGateway{newFakeGateway()}
	s := newTestSession(gw, nil)
	defer s.Close(context.Background())

	el, err := s.Insert(form.TypeText, "")
	require.NoError(t, err)
	_, err = s.UpdateElement(el.ID, form.ElementPatch{Label: strPtr("<b>Name</b>")})
	require.NoError(t, err)
	_, err = s.Select(el.ID)
	require.NoError(t, err)
	require.NoError(t, s.SetTitle("<i>Signup</i>"))
	require.NoError(t, s.SetDescription("<b>Join</b> us"))

	out, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Signup", out.Title)
	assert.Equal(t, "Join us", out.Description)
	require.Len(t, out.Elements, 1)
	assert.Equal(t, "Name", out.Elements[0].Label)

	f, selected := s.Snapshot()
	assert.Equal(t, gw.stored(f.ID).Elements[0].Label, f.Elements[0].Label)
	assert.Equal(t, el.ID, selected)
}
