package kv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the register as a small JSON file, giving the guard
// durable storage across process restarts.
type FileStore struct {
	mu   sync.Mutex
	path string
	m    map[string]string
}

// OpenFileStore loads path, creating parent directories as needed. A
// missing or unreadable file starts the store empty.
func OpenFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	s := &FileStore{path: path, m: map[string]string{}}
	if b, err := os.ReadFile(path); err == nil {
		// Corrupt content is treated as empty, not fatal.
		_ = json.Unmarshal(b, &s.m)
	}
	return s, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return s.flush()
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return s.flush()
}

func (s *FileStore) flush() error {
	b, err := json.Marshal(s.m)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
