package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// Memory is an in-process store, used in tests and for embedded defaults.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memObject
}

type memObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]memObject)}
}

func (m *Memory) Driver() Driver { return DriverMemory }

// Put stores data under key, replacing any previous value.
func (m *Memory) Put(key string, data []byte, contentType string) error {
	k, err := sanitizeKey(key)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = contentTypeFor(k)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[k] = memObject{data: bytes.Clone(data), contentType: contentType, modified: time.Now().UTC()}
	return nil
}

func (m *Memory) Head(_ context.Context, key string) (Info, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return Info{}, err
	}
	m.mu.RLock()
	obj, ok := m.objects[k]
	m.mu.RUnlock()
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return Info{Key: k, Size: int64(len(obj.data)), ContentType: obj.contentType, LastModified: obj.modified}, nil
}

func (m *Memory) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	info, err := m.Head(ctx, key)
	if err != nil {
		return Info{}, nil, err
	}
	m.mu.RLock()
	data := m.objects[info.Key].data
	m.mu.RUnlock()
	return info, io.NopCloser(bytes.NewReader(data)), nil
}
