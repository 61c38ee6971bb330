package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt peeks at the "exp" claim of a JWT without verifying it. The
// token stays opaque to this client; the expiry only sizes the session
// cookie. ok is false for non-JWT tokens or tokens without "exp".
func ExpiresAt(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
