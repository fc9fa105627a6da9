package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Store holds the credential every outgoing request attaches. It is an
// interface so the API client and mutation paths can be tested with a
// fake instead of touching the filesystem.
type Store interface {
	// Token returns the current auth token, or "" when logged out
	Token() string
	// SetToken stores a new token along with the username it belongs to
	SetToken(token, username string) error
	// Username returns the logged-in username, or ""
	Username() string
	// Clear tears the session down (logout, or any 401 from the server)
	Clear() error
}

type fileData struct {
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
}

// FileStore keeps the session in ~/.taskdeck/session.json
type FileStore struct {
	path string
	mu   sync.Mutex
	data fileData
}

// NewFileStore creates a session store backed by the default session file
func NewFileStore() (*FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	s := &FileStore{path: filepath.Join(home, ".taskdeck", "session.json")}
	s.load()
	return s, nil
}

func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	json.Unmarshal(data, &s.data)
}

func (s *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// Token returns the stored auth token
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Token
}

// Username returns the stored username
func (s *FileStore) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Username
}

// SetToken stores a new session
func (s *FileStore) SetToken(token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Token = token
	s.data.Username = username
	return s.save()
}

// Clear removes the session
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fileData{}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(s.path)
}

// MemStore is an in-memory session store for tests
type MemStore struct {
	mu   sync.Mutex
	data fileData
}

// Token returns the stored auth token
func (s *MemStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Token
}

// Username returns the stored username
func (s *MemStore) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Username
}

// SetToken stores a new session
func (s *MemStore) SetToken(token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fileData{Token: token, Username: username}
	return nil
}

// Clear removes the session
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fileData{}
	return nil
}
