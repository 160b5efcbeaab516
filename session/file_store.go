package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store as a single JSON document on disk, the durable
// per-user analog of browser-local storage. Writes go through a temp file
// and an atomic rename so a crash never leaves a half-written document.
// With an encryption key configured the document is sealed with AES-GCM
// before it touches the disk.
type FileStore struct {
	mu     sync.Mutex
	path   string
	key    []byte
	values map[string]string
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithEncryptionKey enables at-rest encryption of the persisted document.
// The key must be 32 bytes.
func WithEncryptionKey(key []byte) FileOption {
	return func(f *FileStore) {
		f.key = key
	}
}

// NewFileStore opens (or creates) a file-backed store at path. A missing
// file starts empty; an unreadable or corrupt document is reset to empty
// rather than surfaced, matching the "storage corruption reads as absent"
// policy of the session layer.
func NewFileStore(path string, opts ...FileOption) (*FileStore, error) {
	f := &FileStore{
		path:   path,
		values: make(map[string]string),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.key != nil && len(f.key) != keySize {
		return nil, ErrInvalidKeySize
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Join(ErrFailedToPersist, err)
	}

	f.load()
	return f, nil
}

// Get returns the value stored under key.
func (f *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.values[key]
	return value, ok, nil
}

// Set stores value under key and persists the document.
func (f *FileStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = value
	return f.persist()
}

// Delete removes all given keys and persists the document once.
func (f *FileStore) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, key := range keys {
		delete(f.values, key)
	}
	return f.persist()
}

// load reads the document from disk. Any failure leaves the store empty.
func (f *FileStore) load() {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return
	}

	if f.key != nil {
		data, err = decrypt(f.key, data)
		if err != nil {
			return
		}
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return
	}
	f.values = values
}

// persist writes the document atomically with owner-only permissions.
func (f *FileStore) persist() error {
	data, err := json.Marshal(f.values)
	if err != nil {
		return errors.Join(ErrFailedToPersist, err)
	}

	if f.key != nil {
		data, err = encrypt(f.key, data)
		if err != nil {
			return err
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Join(ErrFailedToPersist, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errors.Join(ErrFailedToPersist, err)
	}
	return nil
}
