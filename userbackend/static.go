// Package userbackend provides CredentialStore implementations for sign-in.
package userbackend

import (
	"fmt"
	"log/slog"

	"github.com/sagarc03/docshelf"
)

// StaticCredentialStore accepts a fixed allow-list of usernames that all
// share one password.
type StaticCredentialStore struct {
	users    map[string]struct{}
	password string
}

// NewStaticCredentialStore creates a store for the given usernames and shared
// password. Empty usernames are ignored. Names that could not carry a session
// token (whitespace, path separators, control characters) are skipped with a
// warning.
func NewStaticCredentialStore(users []string, password string) *StaticCredentialStore {
	set := make(map[string]struct{}, len(users))
	for _, u := range users {
		if u == "" {
			continue
		}
		if !docshelf.IsValidUsername(u) {
			slog.Warn("skipping invalid username in allow-list", "username", u)
			continue
		}
		set[u] = struct{}{}
	}
	return &StaticCredentialStore{users: set, password: password}
}

// Lookup returns the shared password if username is allow-listed.
func (s *StaticCredentialStore) Lookup(username string) (string, error) {
	if _, found := s.users[username]; !found || username == "" {
		return "", fmt.Errorf("%w: %w", ErrUserNotFound, docshelf.ErrUnauthorized)
	}
	return s.password, nil
}

// Len returns the number of allow-listed users.
func (s *StaticCredentialStore) Len() int {
	return len(s.users)
}
