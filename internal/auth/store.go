// Package auth stores the bearer credential for the practice server.
// The credential is a single string kept at a fixed path under the
// dojoterm config directory, cleared on logout or on any 401 response.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dojoterm-dev/dojoterm/internal/config"
)

// ErrNoCredential is returned when no token has been stored.
var ErrNoCredential = errors.New("no stored credential")

const tokenFile = "token"

// Store reads and writes the stored credential.
type Store struct {
	home string
}

// NewStore creates a Store rooted at the given home directory.
func NewStore(home string) *Store {
	return &Store{home: home}
}

// Path returns the location of the token file.
func (s *Store) Path() string {
	return filepath.Join(s.home, ".dojoterm", tokenFile)
}

// Save writes the token, creating the config directory if needed.
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}

	if _, err := config.Dir(s.home); err != nil {
		return err
	}

	if err := os.WriteFile(s.Path(), []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	return nil
}

// Load returns the stored token, or ErrNoCredential if none exists.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("reading token: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}
