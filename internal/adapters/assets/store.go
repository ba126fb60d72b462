// Package assets provides read access to static page assets such as the
// background image, backed by the local filesystem, S3 or memory.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Driver identifies a concrete asset backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local filesystem (default)
	DriverS3         Driver = "s3"     // S3 / MinIO compatible
	DriverMemory     Driver = "memory" // in-memory (tests)
)

// Info describes a stored asset.
type Info struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Store is a read-only asset source. Missing keys yield an error wrapping
// ErrNotFound.
type Store interface {
	// Head returns metadata only.
	Head(ctx context.Context, key string) (Info, error)
	// Get returns the asset contents. The caller closes the reader.
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	// Driver returns the backend driver.
	Driver() Driver
}

// Exists reports whether key is present. A not-found result is not an error.
func Exists(ctx context.Context, s Store, key string) (bool, error) {
	_, err := s.Head(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Config selects and configures a backend.
type Config struct {
	Driver Driver
	// Root is the directory for the filesystem driver.
	Root string
	S3   S3Config
}

// Open builds the Store selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverFilesystem, "":
		return NewFilesystem(cfg.Root), nil
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}
