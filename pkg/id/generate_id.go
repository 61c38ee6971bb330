// Package id issues the opaque browser session ids carried in the portal's
// session cookie.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns a session id: 16 random bytes as 32 lowercase hex
// characters. The session middleware accepts only cookies of this shape and
// a new one is issued for every visitor and again at every sign-in, so ids
// must never repeat or be guessable.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
