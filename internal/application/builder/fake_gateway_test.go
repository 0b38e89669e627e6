package builder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/session"
)

var errGatewayDown = errors.New("gateway down")

// fakeGateway is an in-memory Gateway with switches for failure paths.
type fakeGateway struct {
	mu      sync.Mutex
	forms   map[string]*form.Form
	nextID  int
	updates []form.UpdateFormDTO

	failCreate  error
	failUpdate  error
	failPublish error
	blockUpdate chan struct{}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{forms: make(map[string]*form.Form)}
}

func (g *fakeGateway) put(f *form.Form) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.forms[f.ID] = f.Clone()
}

func (g *fakeGateway) stored(id string) *form.Form {
	g.mu.Lock()
	defer g.mu.Unlock()
	f, ok := g.forms[id]
	if !ok {
		return nil
	}
	return f.Clone()
}

func (g *fakeGateway) updateCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.updates)
}

func (g *fakeGateway) setFailUpdate(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failUpdate = err
}

func (g *fakeGateway) CreateForm(_ context.Context, p session.Principal, in form.CreateFormDTO) (*form.Form, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failCreate != nil {
		return nil, g.failCreate
	}
	g.nextID++
	now := time.Now().UTC()
	f := &form.Form{
		ID:             fmt.Sprintf("form-%d", g.nextID),
		OwnerID:        p.UserID,
		Title:          in.Title,
		Description:    in.Description,
		Elements:       form.CloneElements(in.Elements),
		Status:         form.StatusDraft,
		AllowAnonymous: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	g.forms[f.ID] = f
	return f.Clone(), nil
}

func (g *fakeGateway) UpdateForm(ctx context.Context, _ session.Principal, id string, in form.UpdateFormDTO) (*form.Form, error) {
	g.mu.Lock()
	block := g.blockUpdate
	g.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failUpdate != nil {
		return nil, g.failUpdate
	}
	f, ok := g.forms[id]
	if !ok {
		return nil, errors.New("not found")
	}
	g.updates = append(g.updates, in)
	f.Title = in.Title
	f.Description = in.Description
	f.Elements = form.CloneElements(in.Elements)
	if in.Status != nil {
		f.Status = *in.Status
	}
	return f.Clone(), nil
}

func (g *fakeGateway) PublishForm(_ context.Context, _ session.Principal, id string, settings form.PublishSettings) (*form.Form, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failPublish != nil {
		return nil, g.failPublish
	}
	f, ok := g.forms[id]
	if !ok {
		return nil, errors.New("not found")
	}
	now := time.Now().UTC()
	f.Status = form.StatusPublished
	f.PublishedAt = &now
	if settings.AllowAnonymous != nil {
		f.AllowAnonymous = *settings.AllowAnonymous
	}
	if settings.CollectEmails != nil {
		f.CollectEmails = *settings.CollectEmails
	}
	return f.Clone(), nil
}

func (g *fakeGateway) UnpublishForm(_ context.Context, _ session.Principal, id string) (*form.Form, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f, ok := g.forms[id]
	if !ok {
		return nil, errors.New("not found")
	}
	f.Status = form.StatusUnpublished
	return f.Clone(), nil
}

func (g *fakeGateway) GetForm(_ context.Context, p session.Principal, id string) (*form.Form, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f, ok := g.forms[id]
	if !ok {
		return nil, errors.New("not found")
	}
	if f.OwnerID != p.UserID {
		return nil, errors.New("not authorized")
	}
	return f.Clone(), nil
}

var owner = session.Principal{SessionID: "sess-1", UserID: 7, Email: "owner@example.com", Role: "user"}

func newTestSession(gw Gateway, f *form.Form) *Session {
	return NewSession(owner, f, gw, Options{MaxElements: 5, Origin: "https://forms.example.com"})
}
