package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ymiyake/enquete/internal/client/models"
)

// fakeClient is an in-memory stand-in for the remote services. Values are
// kept per full path; Post counts up predictable keys ("k01", "k02", ...)
// so listing order is stable in tests.
type fakeClient struct {
	values map[string]any
	nextID int

	signInSession *models.Session
	signInErr     error

	getErr  error
	postErr error
	putErr  error

	putPaths []string
	getPaths []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: make(map[string]any)}
}

func (f *fakeClient) SignIn(_ context.Context, email, password string) (*models.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.signInSession, nil
}

func (f *fakeClient) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	return f.SignIn(ctx, email, password)
}

func (f *fakeClient) Get(_ context.Context, path string) (json.RawMessage, error) {
	f.getPaths = append(f.getPaths, path)
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.values[path]
	if !ok {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *fakeClient) Post(_ context.Context, path string, v any) (string, error) {
	if f.postErr != nil {
		return "", f.postErr
	}
	f.nextID++
	id := fmt.Sprintf("k%02d", f.nextID)
	f.setChild(path, id, v)
	return id, nil
}

func (f *fakeClient) Put(_ context.Context, path string, v any) error {
	f.putPaths = append(f.putPaths, path)
	if f.putErr != nil {
		return f.putErr
	}
	f.values[path] = roundTrip(v)
	return nil
}

func (f *fakeClient) Patch(_ context.Context, path string, v any) error {
	cur, ok := f.values[path].(map[string]any)
	if !ok {
		cur = make(map[string]any)
	}
	patch, _ := roundTrip(v).(map[string]any)
	for k, val := range patch {
		cur[k] = val
	}
	f.values[path] = cur
	return nil
}

// setChild stores v both as the collection member at path and as a child
// of the collection node itself, so a later Get(path) sees it.
func (f *fakeClient) setChild(path, id string, v any) {
	col, ok := f.values[path].(map[string]any)
	if !ok {
		col = make(map[string]any)
	}
	col[id] = roundTrip(v)
	f.values[path] = col
	f.values[path+"/"+id] = roundTrip(v)
}

func roundTrip(v any) any {
	data, _ := json.Marshal(v)
	var out any
	_ = json.Unmarshal(data, &out)
	return out
}
