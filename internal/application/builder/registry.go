package builder

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/linskybing/formify-go/internal/domain/form"
	"github.com/linskybing/formify-go/internal/session"
)

// Registry keeps the open editing sessions of the process.
type Registry struct {
	gateway Gateway
	opts    Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(gw Gateway, opts Options) *Registry {
	return &Registry{
		gateway:  gw,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Open starts a session on an existing form, or on a new draft when formID
// is empty.
func (r *Registry) Open(ctx context.Context, p session.Principal, formID string) (*Session, error) {
	var f *form.Form
	if formID != "" {
		loaded, err := r.gateway.GetForm(ctx, p, formID)
		if err != nil {
			return nil, err
		}
		f = loaded
	}

	s := NewSession(p, f, r.gateway, r.opts)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	log.Printf("[Builder] user %d opened session %s", p.UserID, s.ID)
	return s, nil
}

// Get returns a session owned by p.
func (r *Registry) Get(p session.Principal, id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok || s.Principal().UserID != p.UserID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close drains and removes a session owned by p.
func (r *Registry) Close(ctx context.Context, p session.Principal, id string) error {
	s, err := r.Get(p, id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	s.Close(ctx)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep closes sessions unused for longer than idle and returns how many it
// closed.
func (r *Registry) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	var stale []*Session

	r.mu.Lock()
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.Close(ctx)
	}
	if len(stale) > 0 {
		log.Printf("[Builder] swept %d idle sessions", len(stale))
	}
	return len(stale)
}

// Shutdown closes every session, flushing pending changes until ctx ends.
func (r *Registry) Shutdown(ctx context.Context) {
	r.mu.Lock()
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	var wg sync.WaitGroup
	for _, s := range all {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.Close(ctx)
		}(s)
	}
	wg.Wait()
}
