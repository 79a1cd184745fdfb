package userbackend_test

import (
	"testing"

	"github.com/sagarc03/docshelf"
	"github.com/sagarc03/docshelf/userbackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentialStore_InlineUsersOnly(t *testing.T) {
	t.Parallel()

	store, err := userbackend.NewCredentialStore(userbackend.UsersConfig{
		Allowed:  []string{"user1", "user2"},
		Password: "user123",
	})
	require.NoError(t, err)

	pw, err := store.Lookup("user1")
	require.NoError(t, err)
	assert.Equal(t, "user123", pw)

	_, err = store.Lookup("user3")
	assert.ErrorIs(t, err, userbackend.ErrUserNotFound)
}

func TestNewCredentialStore_InlineAndFile(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, `["file_user"]`)

	store, err := userbackend.NewCredentialStore(userbackend.UsersConfig{
		Allowed:  []string{"inline_user"},
		File:     path,
		Password: "shared",
	})
	require.NoError(t, err)

	for _, u := range []string{"inline_user", "file_user"} {
		pw, lookupErr := store.Lookup(u)
		require.NoError(t, lookupErr, u)
		assert.Equal(t, "shared", pw)
	}
}

func TestNewCredentialStore_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := userbackend.NewCredentialStore(userbackend.UsersConfig{
		File:     "/nonexistent/users.json",
		Password: "shared",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read users file")
}

func TestNewCredentialStore_EmptyPassword(t *testing.T) {
	t.Parallel()

	_, err := userbackend.NewCredentialStore(userbackend.UsersConfig{
		Allowed: []string{"user1"},
	})

	assert.Error(t, err)
}

func TestNewCredentialStore_InvalidUsernamesCannotSignIn(t *testing.T) {
	t.Parallel()

	store, err := userbackend.NewCredentialStore(userbackend.UsersConfig{
		Allowed:  []string{"john doe", "user1"},
		Password: "pw",
	})
	require.NoError(t, err)

	auth, err := docshelf.NewAuthenticator(store, "secret")
	require.NoError(t, err)

	_, ok := auth.CheckCredentials("john doe", "pw")
	assert.False(t, ok)

	token, ok := auth.CheckCredentials("user1", "pw")
	require.True(t, ok)
	assert.True(t, auth.VerifyToken(token))
}
