// Package auth verifies HTTP Basic credentials against the configured
// credential pair.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks a username/password pair against the configured
// credentials. When a bcrypt hash is configured it is verified instead of
// the plain password.
type Verifier struct {
	username     string
	password     string
	passwordHash string
}

// NewVerifier creates a Verifier for a single credential pair.
func NewVerifier(username, password, passwordHash string) *Verifier {
	return &Verifier{
		username:     username,
		password:     password,
		passwordHash: passwordHash,
	}
}

// Verify reports whether the supplied credentials match. Comparison is
// constant-time so verification does not leak which part was wrong.
func (v *Verifier) Verify(username, password string) bool {
	userOK := constantTimeEquals(username, v.username)

	if v.passwordHash != "" {
		hashOK := bcrypt.CompareHashAndPassword([]byte(v.passwordHash), []byte(password)) == nil
		return userOK && hashOK
	}

	passOK := constantTimeEquals(password, v.password)
	return userOK && passOK
}

// constantTimeEquals compares two strings in constant time regardless of
// length, by comparing fixed-size digests.
func constantTimeEquals(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}
