package builder

import (
	"sync"
	"time"

	"github.com/linskybing/formify-go/internal/domain/form"
)

type EventType string

const (
	EventSchemaChanged EventType = "schema.changed"
	EventSelection     EventType = "selection.changed"
	EventWarning       EventType = "warning"
	EventSyncApplied   EventType = "sync.applied"
	EventSyncFailed    EventType = "sync.failed"
	EventPublished     EventType = "published"
	EventUnpublished   EventType = "unpublished"
	EventClosed        EventType = "session.closed"
)

// Event is pushed to the subscribers of an editing session.
type Event struct {
	Type       EventType  `json:"type"`
	Seq        uint64     `json:"seq,omitempty"`
	Message    string     `json:"message,omitempty"`
	SelectedID string     `json:"selected_id,omitempty"`
	Form       *form.Form `json:"form,omitempty"`
	At         time.Time  `json:"at"`
}

// Broker fans events out to subscribers. A subscriber that does not keep up
// misses events rather than blocking the session.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	closed bool
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Event)}
}

// Subscribe returns a channel of events and a cancel func. The channel is
// closed on cancel or when the broker closes.
func (b *Broker) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

func (b *Broker) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}
