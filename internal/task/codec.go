package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorrupt marks stored data that could not be decoded into a List.
var ErrCorrupt = errors.New("corrupt task data")

// Encode serializes l as a JSON array in list order.
func Encode(l List) ([]byte, error) {
	if l == nil {
		l = List{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array produced by Encode. A JSON null yields an empty
// list. Elements without a title make the whole payload corrupt. Later tasks
// that reuse an earlier id, or carry none, get a fresh one.
func Decode(data []byte) (List, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrCorrupt)
	}
	var l List
	if err := json.Unmarshal(trimmed, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if l == nil {
		return List{}, nil
	}
	for i, t := range l {
		if !ValidTitle(t.Title) {
			return nil, fmt.Errorf("%w: element %d has no title", ErrCorrupt, i)
		}
	}
	seen := make(map[string]struct{}, len(l))
	for i := range l {
		if _, dup := seen[l[i].ID]; dup || l[i].ID == "" {
			l[i].ID = freshID(seen)
		}
		seen[l[i].ID] = struct{}{}
	}
	return l, nil
}

func freshID(seen map[string]struct{}) string {
	for {
		id := NewID()
		if _, ok := seen[id]; !ok {
			return id
		}
	}
}
