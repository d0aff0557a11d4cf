// Package file implements db.Store on a local directory. It is the default
// resource cache: entries survive restarts and writes are atomic.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yazarlar/articlekit/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store keeps one file per key under dir.
type Store struct {
	dir string
	now func() time.Time
}

// entry is the on-disk envelope. ExpiresAt is unix nanoseconds, 0 means never.
type entry struct {
	ExpiresAt int64  `json:"expires_at,omitempty"`
	Value     []byte `json:"value"`
}

// NewStore creates the cache directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache dir is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.dir }

// Ping checks that the cache directory still exists.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	if !info.IsDir() {
		return &db.Error{Op: db.OpPing, Err: fmt.Errorf("%s is not a directory", s.dir)}
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() {}

// Get reads a value. Expired entries are removed and reported as missing.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is built from a validated key
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpRead, Err: err}
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, &db.Error{Op: db.OpRead, Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	if e.ExpiresAt > 0 && s.now().UnixNano() >= e.ExpiresAt {
		_ = os.Remove(path)
		return nil, db.ErrKeyNotFound
	}
	return e.Value, nil
}

// Set stores a value without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.SetWithTTL(ctx, key, value, 0)
}

// SetWithTTL stores a value that expires after ttl (ttl <= 0 never expires).
// The file is written to a temp name and renamed, so readers never see a partial entry.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	e := entry{Value: value}
	if ttl > 0 {
		e.ExpiresAt = s.now().Add(ttl).UnixNano()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return &db.Error{Op: db.OpWrite, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	return nil
}

// path maps a key to a file name. Separators are rejected so a key can never
// escape the cache directory; ':' is replaced for filesystems that forbid it.
func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", db.ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, strings.ReplaceAll(key, ":", "_")+".cache"), nil
}
