package task

import (
	"strings"

	"github.com/google/uuid"
)

// Task is a single to-do entry.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// List is the ordered, id-unique set of tasks. Mutating methods never touch the
// receiver's backing array; they return a fresh slice.
type List []Task

// NewID returns a random identifier for a new task.
func NewID() string { return uuid.NewString() }

// ValidTitle reports whether title has content after trimming.
func ValidTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}

// Index returns the position of id, or -1.
func (l List) Index(id string) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with id and whether it exists.
func (l List) Find(id string) (Task, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return Task{}, false
}

// Clone returns a copy that shares no backing array with l. A nil list
// clones to an empty one.
func (l List) Clone() List {
	if l == nil {
		return List{}
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Completed counts finished tasks.
func (l List) Completed() int {
	n := 0
	for _, t := range l {
		if t.Completed {
			n++
		}
	}
	return n
}

// Add appends t to a copy of l.
func (l List) Add(t Task) List {
	out := make(List, len(l), len(l)+1)
	copy(out, l)
	return append(out, t)
}

// Toggle flips the completion flag of id. On a miss the receiver is returned
// unchanged together with false.
func (l List) Toggle(id string) (List, bool) {
	i := l.Index(id)
	if i < 0 {
		return l, false
	}
	out := l.Clone()
	out[i].Completed = !out[i].Completed
	return out, true
}

// Delete removes id keeping the order of the remaining tasks. On a miss the
// receiver is returned unchanged together with false.
func (l List) Delete(id string) (List, bool) {
	i := l.Index(id)
	if i < 0 {
		return l, false
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:i]...)
	out = append(out, l[i+1:]...)
	return out, true
}
