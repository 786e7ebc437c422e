package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/jask/jasktasks/internal/kvstore"
	"github.com/jask/jasktasks/internal/task"
)

// ErrAlreadyLoaded is returned by Load once state has been initialised.
var ErrAlreadyLoaded = errors.New("task store already loaded")

// maxIDAttempts bounds retries against a generator that keeps colliding.
const maxIDAttempts = 8

// Saver receives every new snapshot. *Persister implements it.
type Saver interface {
	Save(list task.List) error
}

// Result describes the outcome of a mutation.
type Result struct {
	List    task.List // snapshot after the call
	Task    task.Task // task that was added, toggled or deleted
	Changed bool
	SaveErr error // snapshot could not be queued for writing
}

// TaskStore owns the in-memory task list. Mutations swap in a new snapshot and
// hand it to the Saver; they never wait for storage.
type TaskStore struct {
	source kvstore.Storage
	key    string
	saver  Saver
	newID  func() string

	mu     sync.Mutex
	list   task.List
	loaded bool
}

// StoreOption configures a TaskStore.
type StoreOption func(*TaskStore)

// WithIDFunc overrides the task id generator.
func WithIDFunc(fn func() string) StoreOption {
	return func(s *TaskStore) { s.newID = fn }
}

// NewTaskStore returns an empty, not yet loaded store reading from source
// under key and handing snapshots to saver, which may be nil.
func NewTaskStore(source kvstore.Storage, key string, saver Saver, opts ...StoreOption) *TaskStore {
	s := &TaskStore{
		source: source,
		key:    key,
		saver:  saver,
		newID:  task.NewID,
		list:   task.List{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the stored list once. Whatever goes wrong, the returned list is
// usable: a missing key gives an empty list with no error, a failed read or
// corrupt payload gives an empty list and the cause.
func (s *TaskStore) Load(ctx context.Context) (task.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.list.Clone(), ErrAlreadyLoaded
	}
	s.loaded = true

	raw, ok, err := s.source.Read(ctx, s.key)
	if err != nil {
		return s.list.Clone(), fmt.Errorf("read %q: %w", s.key, err)
	}
	if !ok {
		return s.list.Clone(), nil
	}
	l, err := task.Decode([]byte(raw))
	if err != nil {
		return s.list.Clone(), fmt.Errorf("decode %q: %w", s.key, err)
	}
	s.list = l
	return s.list.Clone(), nil
}

// List returns the current snapshot.
func (s *TaskStore) List() task.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Clone()
}

// Add appends a task with the title as typed. Blank titles are ignored.
func (s *TaskStore) Add(title string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !task.ValidTitle(title) {
		return Result{List: s.list.Clone()}
	}
	t := task.Task{ID: s.uniqueID(), Title: title}
	return s.commit(s.list.Add(t), t)
}

// Toggle flips the completion flag of id. Unknown ids are ignored.
func (s *TaskStore) Toggle(id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.list.Toggle(id)
	if !ok {
		return Result{List: s.list.Clone()}
	}
	t, _ := next.Find(id)
	return s.commit(next, t)
}

// Delete removes id. Unknown ids are ignored.
func (s *TaskStore) Delete(id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.list.Find(id)
	if !ok {
		return Result{List: s.list.Clone()}
	}
	next, _ := s.list.Delete(id)
	return s.commit(next, t)
}

// commit must be called with s.mu held.
func (s *TaskStore) commit(next task.List, t task.Task) Result {
	s.list = next
	s.loaded = true
	res := Result{List: next.Clone(), Task: t, Changed: true}
	if s.saver != nil {
		if err := s.saver.Save(next); err != nil {
			log.Printf("queue save: %v", err)
			res.SaveErr = err
		}
	}
	return res
}

func (s *TaskStore) uniqueID() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && s.list.Index(id) < 0 {
			return id
		}
	}
	for {
		if id := task.NewID(); s.list.Index(id) < 0 {
			return id
		}
	}
}
