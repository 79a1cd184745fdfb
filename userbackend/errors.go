package userbackend

import "errors"

// ErrUserNotFound is returned when the username is not in the allow-list.
var ErrUserNotFound = errors.New("user not found")
