package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem serves assets from a directory on local disk.
type Filesystem struct {
	root string
}

// NewFilesystem returns a store rooted at root ("." when empty). The
// directory is not created; a missing root simply yields not-found.
func NewFilesystem(root string) *Filesystem {
	if root == "" {
		root = "."
	}
	return &Filesystem{root: root}
}

func (s *Filesystem) Driver() Driver { return DriverFilesystem }

// sanitizeKey keeps keys relative to the root.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: absolute %q", ErrInvalidKey, key)
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: traversal %q", ErrInvalidKey, key)
	}
	return clean, nil
}

func (s *Filesystem) pathFor(key string) (string, string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", "", err
	}
	return k, filepath.Join(s.root, filepath.FromSlash(k)), nil
}

func (s *Filesystem) Head(_ context.Context, key string) (Info, error) {
	k, path, err := s.pathFor(key)
	if err != nil {
		return Info{}, err
	}
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return Info{}, fmt.Errorf("stat %s: %w", key, err)
	}
	if st.IsDir() {
		return Info{}, fmt.Errorf("%w: %s is a directory", ErrNotFound, key)
	}
	return Info{
		Key:          k,
		Size:         st.Size(),
		ContentType:  contentTypeFor(k),
		LastModified: st.ModTime().UTC(),
	}, nil
}

func (s *Filesystem) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	info, err := s.Head(ctx, key)
	if err != nil {
		return Info{}, nil, err
	}
	_, path, _ := s.pathFor(key)
	f, err := os.Open(path) //nolint:gosec // key is sanitized to stay under root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return Info{}, nil, fmt.Errorf("open %s: %w", key, err)
	}
	return info, f, nil
}

func contentTypeFor(key string) string {
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
