package session

import (
	"encoding/json"
	"os"
	"sync"
)

// KeyValue is the small local store the session is persisted in, so a
// restart restores the signed-in identity without re-prompting credentials.
type KeyValue interface {
	Get(key string) (string, bool)
	Set(key string, value string)
	Delete(key string)
}

// MemoryStore keeps values in-process. Used in tests and as a fallback when
// no session file is writable.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	return value, ok
}

func (s *MemoryStore) Set(key string, value string) {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
}

// FileStore persists the map as a JSON file after every mutation.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt session file only costs the user a fresh login.
		s.data = make(map[string]string)
	}
	return s, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	return value, ok
}

func (s *FileStore) Set(key string, value string) {
	s.mu.Lock()
	s.data[key] = value
	s.flush()
	s.mu.Unlock()
}

func (s *FileStore) Delete(key string) {
	s.mu.Lock()
	delete(s.data, key)
	s.flush()
	s.mu.Unlock()
}

func (s *FileStore) flush() {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, raw, 0o600)
}
