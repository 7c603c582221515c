package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
)

const (
	BackendGdata  = "gdata"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var ErrUnknownBackend = errors.New("storage: unknown backend")

// Blob is a string-keyed byte store.
type Blob interface {
	// Get returns ok=false when key has never been written or was deleted.
	Get(key string) (data []byte, ok bool, err error)
	Put(key string, data []byte) error
	Delete(key string) error
	Close() error
}

// Open returns the blob backend named by backend. appName scopes gdata
// storage; dataDir holds the SQLite file.
func Open(backend, appName, dataDir string) (Blob, error) {
	switch backend {
	case BackendGdata, "":
		return OpenGdata(appName)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, "seesaw.db"))
	case BackendMemory:
		return NewMemoryBlob(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

type MemoryBlob struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{data: make(map[string][]byte)}
}

func (m *MemoryBlob) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryBlob) Put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(data))
	copy(v, data)
	m.data[key] = v
	return nil
}

func (m *MemoryBlob) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryBlob) Close() error { return nil }
