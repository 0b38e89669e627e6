package builder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/session"
)

const DefaultTitle = "Untitled Form"

// Options configure editing sessions.
type Options struct {
	MaxElements int
	Origin      string
}

func (o Options) maxElements() int {
	if o.MaxElements <= 0 {
		return 50
	}
	return o.MaxElements
}

// Session is the server-side owner of one form while it is being designed.
// All operations on a session are serialized by its mutex. Changes to a form
// with a durable identity are queued on the outbox and never block the
// caller on the gateway.
type Session struct {
	ID        string
	principal session.Principal
	opts      Options
	gateway   Gateway
	outbox    *Outbox
	events    *Broker

	mu       sync.Mutex
	form     *form.Form
	selected string
	preview  *Preview
	lastUsed time.Time
	closed   bool
}

// NewSession opens a session on f, or on a fresh untitled draft when f is
// nil.
func NewSession(p session.Principal, f *form.Form, gw Gateway, opts Options) *Session {
	if f == nil {
		f = &form.Form{
			Title:          DefaultTitle,
			Status:         form.StatusDraft,
			Elements:       []form.Element{},
			OwnerID:        p.UserID,
			AllowAnonymous: true,
		}
	} else {
		f = f.Clone()
	}

	s := &Session{
		ID:        uuid.NewString(),
		principal: p,
		opts:      opts,
		gateway:   gw,
		events:    NewBroker(),
		form:      f,
		preview:   NewPreview(f.Elements),
		lastUsed:  time.Now(),
	}
	s.outbox = NewOutbox(s.applyJob, s.syncResult)
	return s
}

func (s *Session) Principal() session.Principal {
	return s.principal
}

func (s *Session) applyJob(ctx context.Context, job Job) error {
	_, err := s.gateway.UpdateForm(ctx, s.principal, job.FormID, job.Snapshot)
	return err
}

func (s *Session) syncResult(job Job, err error) {
	if err != nil {
		s.events.Publish(Event{Type: EventSyncFailed, Seq: job.Seq, Message: err.Error()})
		return
	}
	s.events.Publish(Event{Type: EventSyncApplied, Seq: job.Seq})
}

// Subscribe streams the session's events.
func (s *Session) Subscribe() (<-chan Event, func()) {
	return s.events.Subscribe(32)
}

// Snapshot returns a copy of the current schema and the selected element id.
func (s *Session) Snapshot() (*form.Form, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Clone(), s.selected
}

func (s *Session) SyncStatus() SyncStatus {
	return s.outbox.Status()
}

func (s *Session) touch() {
	s.lastUsed = time.Now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) lock() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.touch()
	return nil
}

func (s *Session) snapshotDTO() form.UpdateFormDTO {
	status := s.form.Status
	dto := form.UpdateFormDTO{
		Title:       s.form.Title,
		Description: s.form.Description,
		Elements:    form.CloneElements(s.form.Elements),
		Status:      &status,
	}
	if s.form.PublishedAt != nil {
		t := *s.form.PublishedAt
		dto.PublishedAt = &t
	}
	return dto
}

// changed runs after every successful mutation while s.mu is held.
func (s *Session) changed() {
	s.preview.Sync(s.form.Elements)
	s.events.Publish(Event{Type: EventSchemaChanged, Form: s.form.Clone(), SelectedID: s.selected})
	if !s.form.HasIdentity() {
		return
	}
	if _, err := s.outbox.Enqueue(s.form.ID, s.snapshotDTO()); err != nil {
		s.events.Publish(Event{Type: EventWarning, Message: fmt.Sprintf("change not queued: %v", err)})
	}
}

// Close drains the outbox and ends the session.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.outbox.Close(ctx)
	s.events.Publish(Event{Type: EventClosed})
	s.events.Close()
}
