package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a durable Store: the tree lives in memory for reads and
// is serialized into a single-row sqlite table after every write, then
// restored on open. The emulator's datasets are small, so a full snapshot
// per write is cheap and keeps the on-disk format trivial to inspect.
type SQLiteStore struct {
	mem *MemoryStore
	db  *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at path and loads the
// persisted tree.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS tree (
			id   INTEGER PRIMARY KEY CHECK (id = 1),
			data TEXT NOT NULL
		);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &SQLiteStore{mem: NewMemoryStore(), db: db}
	if err := s.load(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) load(ctx context.Context) error {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM tree WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load tree: %w", err)
	}

	var root map[string]any
	if err := json.Unmarshal([]byte(data), &root); err != nil {
		return fmt.Errorf("decode tree: %w", err)
	}
	s.mem.restore(root)
	return nil
}

func (s *SQLiteStore) persist(ctx context.Context) error {
	data, err := json.Marshal(s.mem.snapshot())
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tree (id, data) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data`, string(data))
	if err != nil {
		return fmt.Errorf("persist tree: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, path string) (any, error) {
	return s.mem.Get(ctx, path)
}

func (s *SQLiteStore) Put(ctx context.Context, path string, v any) error {
	if err := s.mem.Put(ctx, path, v); err != nil {
		return err
	}
	return s.persist(ctx)
}

func (s *SQLiteStore) Patch(ctx context.Context, path string, fields map[string]any) error {
	if err := s.mem.Patch(ctx, path, fields); err != nil {
		return err
	}
	return s.persist(ctx)
}

func (s *SQLiteStore) Post(ctx context.Context, path string, v any) (string, error) {
	id, err := s.mem.Post(ctx, path, v)
	if err != nil {
		return "", err
	}
	if err := s.persist(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
