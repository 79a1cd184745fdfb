package userbackend

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadUsersFromFile loads an allow-list of usernames from a JSON file.
// The file should contain an array of usernames:
//
//	["user1", "user2", "user3"]
//
// Empty entries are skipped.
func LoadUsersFromFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}

	users := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			users = append(users, n)
		}
	}

	return users, nil
}
