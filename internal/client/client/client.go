// Package client abstracts the remote identity and data services behind a
// capability interface so the rest of the application never touches the
// wire format directly and tests can substitute an in-memory fake.
package client

import (
	"context"
	"encoding/json"

	"github.com/ymiyake/enquete/internal/client/models"
)

// Client is the full capability surface the application needs from the
// remote services: two identity operations and four data operations
// against the path-addressed JSON tree.
//
// Contract:
//   - SignIn/SignUp: one network call each; on success the returned session
//     carries token, user id, email and refresh token. Prior session state
//     is untouched on failure.
//   - Get: returns the raw JSON value at the path, or (nil, nil) when the
//     node is absent or null. Callers must treat both as "no data".
//   - Post: creates a child under path with a store-generated key and
//     returns that key.
//   - Put: overwrites the full value at the path.
//   - Patch: merges the given fields into the value at the path, leaving
//     sibling fields intact.
//
// All methods honor context cancellation. No method retries.
type Client interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, data any) (string, error)
	Put(ctx context.Context, path string, data any) error
	Patch(ctx context.Context, path string, data any) error
}
