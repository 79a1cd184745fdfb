package userbackend

import (
	"errors"

	"github.com/sagarc03/docshelf"
)

// UsersConfig holds configuration for the sign-in allow-list.
type UsersConfig struct {
	Allowed  []string `mapstructure:"allowed" yaml:"allowed"`   // Inline usernames from config
	File     string   `mapstructure:"file" yaml:"file"`         // Path to JSON file containing usernames
	Password string   `mapstructure:"password" yaml:"password"` // Password shared by every user
}

// NewCredentialStore creates a CredentialStore from the given configuration.
// Usernames from the inline list and the file (if specified) are merged.
func NewCredentialStore(cfg UsersConfig) (docshelf.CredentialStore, error) {
	if cfg.Password == "" {
		return nil, errors.New("new credential store: shared password is empty")
	}

	users := append([]string(nil), cfg.Allowed...)

	if cfg.File != "" {
		fileUsers, err := LoadUsersFromFile(cfg.File)
		if err != nil {
			return nil, err
		}
		users = append(users, fileUsers...)
	}

	return NewStaticCredentialStore(users, cfg.Password), nil
}
