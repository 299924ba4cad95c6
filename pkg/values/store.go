// Package values holds form data addressed by dotted paths ("items.0.name").
// Objects are map[string]any, arrays are []any.
package values

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// ErrNotArray is returned when an array operation targets a non-array value.
var ErrNotArray = errors.New("values: path does not hold an array")

// Reader exposes read access to the current values.
type Reader interface {
	Get(path string) (any, bool)
}

// Store tracks form values. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewStore seeds the store with a deep copy of prefill.
func NewStore(prefill map[string]any) *Store {
	return &Store{values: Clone(prefill)}
}

// Get resolves a dotted path.
func (s *Store) Get(path string) (any, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Get(s.values, path)
}

// Set writes a value using a dotted path, creating intermediate maps and
// slices as needed.
func (s *Store) Set(path string, value any) error {
	if s == nil {
		return fmt.Errorf("values: store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return Set(s.values, path, value)
}

// Delete removes the value at path. Missing paths are ignored.
func (s *Store) Delete(path string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	segments := split(path)
	if len(segments) == 0 {
		return
	}
	parent := any(s.values)
	if len(segments) > 1 {
		var ok bool
		parent, ok = Get(s.values, strings.Join(segments[:len(segments)-1], "."))
		if !ok {
			return
		}
	}
	if m, ok := parent.(map[string]any); ok {
		delete(m, segments[len(segments)-1])
	}
}

// Snapshot returns a deep copy of every value.
func (s *Store) Snapshot() map[string]any {
	if s == nil {
		return map[string]any{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Clone(s.values)
}

// Len returns the length of the array at path, or zero when the path is not
// bound to an array.
func (s *Store) Len(path string) int {
	value, ok := s.Get(path)
	if !ok {
		return 0
	}
	items, ok := value.([]any)
	if !ok {
		return 0
	}
	return len(items)
}

// Update applies fn to the array at path and stores the result. A missing
// path is treated as an empty array.
func (s *Store) Update(path string, fn func([]any) ([]any, error)) error {
	if s == nil {
		return fmt.Errorf("values: store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]any)
	}
	var items []any
	if current, ok := Get(s.values, path); ok && current != nil {
		typed, ok := current.([]any)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotArray, path)
		}
		items = append([]any(nil), typed...)
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return Set(s.values, path, next)
}

// Get resolves a dotted path inside root.
func Get(root map[string]any, path string) (any, bool) {
	segments := split(path)
	if root == nil || len(segments) == 0 {
		return nil, false
	}
	current := any(root)
	for _, segment := range segments {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set writes value at path inside root.
func Set(root map[string]any, path string, value any) error {
	if root == nil {
		return fmt.Errorf("values: root map is nil")
	}
	segments := split(path)
	if len(segments) == 0 {
		return fmt.Errorf("values: empty path")
	}
	head := segments[0]
	if len(segments) == 1 {
		root[head] = value
		return nil
	}
	child, err := assign(root[head], segments[1:], value, path)
	if err != nil {
		return err
	}
	root[head] = child
	return nil
}

// assign returns container with value written at segments, allocating the
// container when it is missing.
func assign(container any, segments []string, value any, path string) (any, error) {
	segment := segments[0]
	last := len(segments) == 1

	if idx, err := strconv.Atoi(segment); err == nil {
		if idx < 0 {
			return nil, fmt.Errorf("values: negative index in path %q", path)
		}
		var items []any
		switch typed := container.(type) {
		case nil:
		case []any:
			items = typed
		default:
			return nil, fmt.Errorf("values: unexpected container for segment %q in %q", segment, path)
		}
		if len(items) <= idx {
			items = append(items, make([]any, idx+1-len(items))...)
		}
		if last {
			items[idx] = value
			return items, nil
		}
		child, err := assign(items[idx], segments[1:], value, path)
		if err != nil {
			return nil, err
		}
		items[idx] = child
		return items, nil
	}

	var node map[string]any
	switch typed := container.(type) {
	case nil:
		node = make(map[string]any)
	case map[string]any:
		node = typed
	default:
		return nil, fmt.Errorf("values: unexpected container for segment %q in %q", segment, path)
	}
	if last {
		node[segment] = value
		return node, nil
	}
	child, err := assign(node[segment], segments[1:], value, path)
	if err != nil {
		return nil, err
	}
	node[segment] = child
	return node, nil
}

func split(path string) []string {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
