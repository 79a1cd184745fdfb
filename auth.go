package docshelf

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Authenticator checks user credentials and issues login tokens.
//
// A token has the form "<username> <hex-digest>" where the digest is
// HMAC-SHA256, keyed with the token secret, over "<username>:<password>".
// Tokens do not expire and are not stored server side: a token is valid
// exactly when recomputing it for its embedded username reproduces it.
type Authenticator struct {
	store  CredentialStore
	secret []byte
}

// NewAuthenticator creates an Authenticator backed by store. secret keys the
// token digest and must not be empty.
func NewAuthenticator(store CredentialStore, secret string) (*Authenticator, error) {
	if store == nil {
		return nil, errors.New("new authenticator: credential store is nil")
	}
	if secret == "" {
		return nil, fmt.Errorf("new authenticator: empty token secret: %w", ErrInvalidInput)
	}
	return &Authenticator{store: store, secret: []byte(secret)}, nil
}

// IssueToken returns the token for username. The result only depends on the
// username, its password and the token secret.
func (a *Authenticator) IssueToken(username string) (string, error) {
	password, err := a.store.Lookup(username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return username + " " + a.digest(username, password), nil
}

// VerifyToken reports whether token was issued for the username it carries.
func (a *Authenticator) VerifyToken(token string) bool {
	username, _, found := strings.Cut(token, " ")
	if !found || username == "" {
		return false
	}

	expected, err := a.IssueToken(username)
	if err != nil {
		return false
	}

	return hmac.Equal([]byte(expected), []byte(token))
}

// CheckCredentials returns a token when username is known and password
// matches. Empty usernames and passwords never match.
func (a *Authenticator) CheckCredentials(username, password string) (string, bool) {
	if username == "" || password == "" {
		return "", false
	}

	expected, err := a.store.Lookup(username)
	if err != nil {
		return "", false
	}

	if subtle.ConstantTimeCompare([]byte(expected), []byte(password)) != 1 {
		return "", false
	}

	return username + " " + a.digest(username, password), true
}

// UsernameFromToken returns the username segment of a token. It does not
// verify the token.
func UsernameFromToken(token string) string {
	username, _, _ := strings.Cut(token, " ")
	return username
}

func (a *Authenticator) digest(username, password string) string {
	mac := hmac.New(sha256.New, a.secret)
	mac.Write([]byte(username + ":" + password))
	return hex.EncodeToString(mac.Sum(nil))
}
