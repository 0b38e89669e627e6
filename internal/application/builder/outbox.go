package builder

import (
	"context"
	"log"
	"sync"

	"github.com/linskybing/formify-go/internal/domain/form"
)

// Job is one schema snapshot to be written to the gateway.
type Job struct {
	Seq      uint64
	FormID   string
	Snapshot form.UpdateFormDTO
}

// ApplyFunc writes a job to durable storage.
type ApplyFunc func(ctx context.Context, job Job) error

// SyncStatus reports the progress of an outbox.
type SyncStatus struct {
	Issued    uint64 `json:"issued"`
	Applied   uint64 `json:"applied"`
	Pending   int    `json:"pending"`
	Stale     bool   `json:"stale"`
	FailedSeq uint64 `json:"failed_seq,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// Outbox applies sync jobs one at a time, in the order they were issued, on a
// single worker goroutine. A failed job is not retried; it marks the outbox
// stale until a later job succeeds.
type Outbox struct {
	apply    ApplyFunc
	onResult func(Job, error)

	mu        sync.Mutex
	queue     []Job
	issued    uint64
	applied   uint64
	stale     bool
	failedSeq uint64
	lastErr   string
	closed    bool
	changed   chan struct{}

	wake   chan struct{}
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

// NewOutbox starts the worker. onResult, when set, is called on the worker
// goroutine after every job.
func NewOutbox(apply ApplyFunc, onResult func(Job, error)) *Outbox {
	ctx, cancel := context.WithCancel(context.Background())
	o := &Outbox{
		apply:    apply,
		onResult: onResult,
		changed:  make(chan struct{}),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
	go o.run()
	return o
}

// Enqueue issues the next job and returns its sequence number.
func (o *Outbox) Enqueue(formID string, snapshot form.UpdateFormDTO) (uint64, error) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return 0, ErrOutboxClosed
	}
	o.issued++
	seq := o.issued
	o.queue = append(o.queue, Job{Seq: seq, FormID: formID, Snapshot: snapshot})
	o.mu.Unlock()

	o.signal()
	return seq, nil
}

func (o *Outbox) signal() {
	select {
	case o.wake <- struct{}{}:
	default:
	}
}

func (o *Outbox) run() {
	defer close(o.done)
	for {
		o.mu.Lock()
		for len(o.queue) == 0 {
			if o.closed {
				o.mu.Unlock()
				return
			}
			o.mu.Unlock()
			<-o.wake
			o.mu.Lock()
		}
		job := o.queue[0]
		o.queue = o.queue[1:]
		o.mu.Unlock()

		err := o.apply(o.ctx, job)
		if err != nil {
			log.Printf("[Outbox] job %d for form %s failed: %v", job.Seq, job.FormID, err)
		}

		o.mu.Lock()
		o.applied = job.Seq
		if err != nil {
			o.stale = true
			o.failedSeq = job.Seq
			o.lastErr = err.Error()
		} else {
			o.stale = false
			o.failedSeq = 0
			o.lastErr = ""
		}
		close(o.changed)
		o.changed = make(chan struct{})
		o.mu.Unlock()

		if o.onResult != nil {
			o.onResult(job, err)
		}
	}
}

// Flush blocks until every job issued before the call has been applied.
func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	target := o.issued
	o.mu.Unlock()

	for {
		o.mu.Lock()
		if o.applied >= target {
			o.mu.Unlock()
			return nil
		}
		ch := o.changed
		o.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (o *Outbox) Status() SyncStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return SyncStatus{
		Issued:    o.issued,
		Applied:   o.applied,
		Pending:   len(o.queue),
		Stale:     o.stale,
		FailedSeq: o.failedSeq,
		LastError: o.lastErr,
	}
}

// Close stops accepting jobs, lets the worker drain the queue and waits for
// it to exit. Cancelling ctx aborts in-flight gateway calls.
func (o *Outbox) Close(ctx context.Context) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		<-o.done
		return
	}
	o.closed = true
	o.mu.Unlock()
	o.signal()

	select {
	case <-o.done:
	case <-ctx.Done():
		o.cancel()
		<-o.done
	}
	o.cancel()
}
