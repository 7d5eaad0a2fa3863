package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the whole tree as nested map[string]any values guarded
// by one mutex. It is the default backend.
type MemoryStore struct {
	mu   sync.RWMutex
	root map[string]any
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{root: make(map[string]any)}
}

func (s *MemoryStore) Get(_ context.Context, path string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// The copy detaches the result from the tree: callers encode it after
	// the lock is released, while writers keep mutating the same maps.
	return deepCopy(lookup(s.root, splitPath(path))), nil
}

func (s *MemoryStore) Put(_ context.Context, path string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(splitPath(path), v)
	return nil
}

func (s *MemoryStore) Patch(_ context.Context, path string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	segments := splitPath(path)
	node, ok := lookup(s.root, segments).(map[string]any)
	if !ok {
		node = make(map[string]any)
	}
	for k, v := range fields {
		node[k] = v
	}
	s.set(segments, node)
	return nil
}

func (s *MemoryStore) Post(_ context.Context, path string, v any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := newPushID(time.Now())
	s.set(append(splitPath(path), id), v)
	return id, nil
}

func (s *MemoryStore) Close() error { return nil }

// snapshot returns a detached copy of the current tree; used by the
// sqlite backend to persist after each write.
func (s *MemoryStore) snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(s.root).(map[string]any)
}

// restore replaces the whole tree.
func (s *MemoryStore) restore(root map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if root == nil {
		root = make(map[string]any)
	}
	s.root = root
}

// deepCopy clones a decoded JSON tree (maps, slices and scalars) so the
// store never shares live nodes with callers.
func deepCopy(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = deepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = deepCopy(child)
		}
		return out
	default:
		return v
	}
}

// lookup walks the tree along segments; nil means the node is absent.
func lookup(root map[string]any, segments []string) any {
	var cur any = root
	for _, seg := range segments {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}
	if m, ok := cur.(map[string]any); ok && len(m) == 0 {
		return nil
	}
	return cur
}

// set writes v at the node named by segments, creating intermediate
// objects and overwriting any non-object value on the way. Writing nil
// deletes the node, mirroring the remote service's null semantics.
func (s *MemoryStore) set(segments []string, v any) {
	if len(segments) == 0 {
		if m, ok := v.(map[string]any); ok {
			s.root = m
		} else if v == nil {
			s.root = make(map[string]any)
		}
		return
	}

	cur := s.root
	for _, seg := range segments[:len(segments)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[seg] = next
		}
		cur = next
	}

	last := segments[len(segments)-1]
	if v == nil {
		delete(cur, last)
		return
	}
	cur[last] = v
}
