// Package session persists the CLI's bearer token between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFile is the session file name used when no path is given.
const DefaultFile = ".recipeshare-session.json"

// Store is a token kept in a JSON file readable only by its owner.
type Store struct {
	Path string `json:"-"`

	Token string `json:"token"`
	Email string `json:"email,omitempty"`

	mu sync.Mutex
}

// New returns a store backed by path, or DefaultFile when path is empty.
func New(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{Path: path}
}

// Load reads the session file. A missing file leaves the store empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.Token, s.Email = "", ""
			return nil
		}
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(s); err != nil {
		return fmt.Errorf("read session %s: %w", s.Path, err)
	}
	return nil
}

// Save writes the session file with mode 0600.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(s)
}

// Set records a new token for email and saves it.
func (s *Store) Set(token, email string) error {
	s.mu.Lock()
	s.Token, s.Email = token, email
	s.mu.Unlock()
	return s.Save()
}

// Clear forgets the token and removes the session file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Token, s.Email = "", ""
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// CurrentToken returns the stored token, empty when logged out.
func (s *Store) CurrentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Token
}
