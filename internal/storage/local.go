// Package storage implements the blob store that holds uploaded payment
// proofs. Objects are written under a root directory on local disk and
// served back over HTTP from a static route, which is how the public URL
// for an object is resolved.
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrBadObjectPath is returned when a caller supplies an object path that
// would escape the store's root directory.
var ErrBadObjectPath = errors.New("bad object path")

// LocalStore is a blob store rooted at a directory on local disk.
type LocalStore struct {
	root    string // directory objects are written under
	baseURL string // public prefix objects are served from, e.g. https://host/uploads
}

// NewLocalStore creates the root directory if needed and returns a store.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes content under the given object path, creating intermediate
// directories as needed. The path must stay inside the root.
func (s *LocalStore) Save(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, content, 0o644)
}

// PublicURL resolves an object path to the URL it is served from. It does
// not check that the object exists; the contract matches the backing
// bucket's behaviour of resolving URLs unconditionally.
func (s *LocalStore) PublicURL(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Root returns the directory objects live under, for wiring the static
// file route.
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) resolve(path string) (string, error) {
	clean := filepath.Clean(strings.TrimLeft(path, "/"))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrBadObjectPath
	}
	return filepath.Join(s.root, clean), nil
}
