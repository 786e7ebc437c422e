package kvstore

import (
	"context"
	"sync"
)

// Memory keeps values in process. It backs the "memory" storage backend and
// doubles as a test collaborator through the error injection fields.
type Memory struct {
	mu     sync.RWMutex
	m      map[string]string
	writes int

	// Error injection for testing
	ReadErr  error
	WriteErr error
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Read(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ReadErr != nil {
		return "", false, s.ReadErr
	}
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Write(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.m[key] = value
	return nil
}

// Set seeds a value without counting it as a write.
func (s *Memory) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

// SetWriteErr changes the injected write error while writers may be running.
func (s *Memory) SetWriteErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WriteErr = err
}

// Writes reports how many writes were attempted, failed ones included.
func (s *Memory) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
