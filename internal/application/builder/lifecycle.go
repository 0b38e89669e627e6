package builder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/linskybing/formify-go/internal/domain/form"
)

// adopt copies a freshly created gateway form into the session. The gateway
// sanitizes text, so its header and elements replace the local ones.
func (s *Session) adopt(stored *form.Form) {
	s.form.ID = stored.ID
	s.form.OwnerID = stored.OwnerID
	s.form.Title = stored.Title
	s.form.Description = stored.Description
	s.form.Elements = form.CloneElements(stored.Elements)
	s.form.CreatedAt = stored.CreatedAt
	s.form.UpdatedAt = stored.UpdatedAt
	s.form.AllowAnonymous = stored.AllowAnonymous
	s.form.CollectEmails = stored.CollectEmails

	if s.selected != "" && s.form.IndexOf(s.selected) < 0 {
		s.selected = ""
	}
	s.preview.Sync(s.form.Elements)
}

func (s *Session) create(ctx context.Context) error {
	stored, err := s.gateway.CreateForm(ctx, s.principal, form.CreateFormDTO{
		Title:       s.form.Title,
		Description: s.form.Description,
		Elements:    form.CloneElements(s.form.Elements),
	})
	if err != nil {
		return err
	}
	s.adopt(stored)
	return nil
}

// settle makes sure the gateway holds the current schema: it waits for the
// outbox and, if the last job failed, pushes one more snapshot.
func (s *Session) settle(ctx context.Context) error {
	if err := s.outbox.Flush(ctx); err != nil {
		return err
	}
	if !s.outbox.Status().Stale {
		return nil
	}
	if _, err := s.outbox.Enqueue(s.form.ID, s.snapshotDTO()); err != nil {
		return err
	}
	if err := s.outbox.Flush(ctx); err != nil {
		return err
	}
	if st := s.outbox.Status(); st.Stale {
		return fmt.Errorf("%w: %s", ErrSyncFailed, st.LastError)
	}
	return nil
}

// Publish makes the form public. A form without identity is created first.
// On any error the status is left as it was.
func (s *Session) Publish(ctx context.Context, settings form.PublishSettings) (*form.Form, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if len(s.form.Elements) == 0 {
		return nil, ErrEmptyForm
	}

	if !s.form.HasIdentity() {
		if err := s.create(ctx); err != nil {
			return nil, err
		}
	} else if err := s.settle(ctx); err != nil {
		return nil, err
	}

	stored, err := s.gateway.PublishForm(ctx, s.principal, s.form.ID, settings)
	if err != nil {
		return nil, err
	}

	publishedAt := time.Now().UTC()
	if stored.PublishedAt != nil {
		publishedAt = *stored.PublishedAt
	}
	s.form.Status = form.StatusPublished
	s.form.PublishedAt = &publishedAt
	s.form.ShareURL = form.ShareURL(s.opts.Origin, s.form.ID)
	s.form.EmbedCode = form.EmbedCode(s.form.ShareURL)
	s.form.AllowAnonymous = stored.AllowAnonymous
	s.form.CollectEmails = stored.CollectEmails

	out := s.form.Clone()
	s.events.Publish(Event{Type: EventPublished, Form: out.Clone()})
	return out, nil
}

// Unpublish takes a published form offline. The share URL and embed code
// stay on the form.
func (s *Session) Unpublish(ctx context.Context) (*form.Form, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if !s.form.HasIdentity() {
		return nil, ErrNoIdentity
	}
	if s.form.Status != form.StatusPublished {
		return nil, ErrInvalidTransition
	}
	if err := s.outbox.Flush(ctx); err != nil {
		return nil, err
	}

	if _, err := s.gateway.UnpublishForm(ctx, s.principal, s.form.ID); err != nil {
		return nil, err
	}
	s.form.Status = form.StatusUnpublished

	out := s.form.Clone()
	s.events.Publish(Event{Type: EventUnpublished, Form: out.Clone()})
	return out, nil
}

// Save persists the form now: it is created when it has no identity,
// otherwise its pending changes are written and awaited. An untouched
// untitled form is rejected.
func (s *Session) Save(ctx context.Context) (*form.Form, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	title := strings.TrimSpace(s.form.Title)
	if title == "" || (title == DefaultTitle && len(s.form.Elements) == 0) {
		return nil, ErrNothingToSave
	}

	if !s.form.HasIdentity() {
		if err := s.create(ctx); err != nil {
			return nil, err
		}
		return s.form.Clone(), nil
	}

	if _, err := s.outbox.Enqueue(s.form.ID, s.snapshotDTO()); err != nil {
		return nil, err
	}
	if err := s.outbox.Flush(ctx); err != nil {
		return nil, err
	}
	if st := s.outbox.Status(); st.Stale {
		return nil, fmt.Errorf("%w: %s", ErrSyncFailed, st.LastError)
	}
	return s.form.Clone(), nil
}
