// Package store implements the emulator's path-addressed JSON tree.
// Every slash-separated path names a node whose value is an arbitrary JSON
// value; writing a nested path creates the intermediate objects.
package store

import (
	"context"
	"strings"
)

// Store is the tree storage contract. Two implementations exist: the
// default in-memory tree and a sqlite-backed one that survives restarts.
//
// Contract:
//   - Get returns the value at path, or nil when the node is absent.
//   - Put replaces the full value at path.
//   - Patch merges fields into the object at path, creating it if needed;
//     sibling fields not named in fields are left intact.
//   - Post stores v under a generated child key of path and returns the
//     key. Keys sort chronologically.
//
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, path string) (any, error)
	Put(ctx context.Context, path string, v any) error
	Patch(ctx context.Context, path string, fields map[string]any) error
	Post(ctx context.Context, path string, v any) (string, error)
	Close() error
}

// splitPath normalizes a path into its non-empty segments.
// "questions/q1/" -> ["questions", "q1"]; "" and "/" -> nil.
func splitPath(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
