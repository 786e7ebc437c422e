package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jask/jasktasks/internal/kvstore"
	"github.com/jask/jasktasks/internal/task"
)

// ErrClosed is returned by Save after Close.
var ErrClosed = errors.New("persister closed")

// Persister writes task list snapshots to storage from a single goroutine.
// Only the newest unwritten snapshot is kept, so a burst of mutations costs one
// write and writes can never land out of order.
type Persister struct {
	storage kvstore.Storage
	key     string
	logf    func(format string, args ...any)

	mu         sync.Mutex
	pending    []byte
	hasPending bool
	queued     uint64 // sequence of the newest snapshot handed to Save
	pendingSeq uint64
	done       uint64 // sequence of the newest snapshot a write was attempted for
	lastErr    error
	progress   chan struct{}
	closed     bool

	kick    chan struct{}
	stop    chan struct{}
	stopped chan struct{}
}

// PersisterOption configures a Persister.
type PersisterOption func(*Persister)

// WithLogf replaces log.Printf for write failure reports.
func WithLogf(logf func(format string, args ...any)) PersisterOption {
	return func(p *Persister) { p.logf = logf }
}

// NewPersister starts the writer goroutine. Writes run with ctx; cancelling it
// stops the writer without draining.
func NewPersister(ctx context.Context, storage kvstore.Storage, key string, opts ...PersisterOption) *Persister {
	p := &Persister{
		storage:  storage,
		key:      key,
		logf:     log.Printf,
		progress: make(chan struct{}),
		kick:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.run(ctx)
	return p
}

// Save queues list for writing and returns without waiting for storage.
func (p *Persister) Save(list task.List) error {
	data, err := task.Encode(list)
	if err != nil {
		return err
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.queued++
	p.pending, p.hasPending, p.pendingSeq = data, true, p.queued
	p.mu.Unlock()

	select {
	case p.kick <- struct{}{}:
	default:
	}
	return nil
}

// Flush waits until every snapshot saved before the call has been attempted
// and returns the error of the most recent write.
func (p *Persister) Flush(ctx context.Context) error {
	p.mu.Lock()
	target := p.queued
	for p.done < target {
		ch := p.progress
		p.mu.Unlock()
		select {
		case <-ch:
		case <-p.stopped:
			p.mu.Lock()
			if p.done < target {
				p.mu.Unlock()
				return ErrClosed
			}
			p.mu.Unlock()
		case <-ctx.Done():
			return ctx.Err()
		}
		p.mu.Lock()
	}
	err := p.lastErr
	p.mu.Unlock()
	return err
}

// LastError reports the outcome of the most recent write.
func (p *Persister) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Close writes any queued snapshot, stops the writer and returns the error of
// the most recent write.
func (p *Persister) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.stop)
	}
	p.mu.Unlock()
	<-p.stopped
	return p.LastError()
}

func (p *Persister) run(ctx context.Context) {
	defer close(p.stopped)
	for {
		select {
		case <-p.kick:
			p.drain(ctx)
		case <-p.stop:
			p.drain(ctx)
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *Persister) drain(ctx context.Context) {
	for {
		p.mu.Lock()
		if !p.hasPending {
			p.mu.Unlock()
			return
		}
		data, seq := p.pending, p.pendingSeq
		p.pending, p.hasPending = nil, false
		p.mu.Unlock()

		err := p.storage.Write(ctx, p.key, string(data))
		if err != nil {
			p.logf("persist %q: %v", p.key, err)
		}

		p.mu.Lock()
		p.done, p.lastErr = seq, err
		close(p.progress)
		p.progress = make(chan struct{})
		p.mu.Unlock()
	}
}
