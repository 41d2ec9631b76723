package assets

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store persists uploaded images and resolves stored references to
// retrievable URLs.
type Store interface {
	Save(ctx context.Context, name string, src io.Reader) error
	Remove(ctx context.Context, name string) error
	URL(name string) string
}

// DiskStore keeps assets as files under Dir and serves them below BaseURL.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) *DiskStore {
	return &DiskStore{Dir: dir, BaseURL: baseURL}
}

func (s *DiskStore) Save(_ context.Context, name string, src io.Reader) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(s.Dir, filepath.Base(name)))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// Remove releases an asset. Empty references and already-missing files are
// no-ops, so deleting a product whose image is gone never fails.
func (s *DiskStore) Remove(_ context.Context, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.Base(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *DiskStore) URL(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimRight(s.BaseURL, "/") + "/" + name
}
