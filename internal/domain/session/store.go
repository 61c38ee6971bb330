package session

import (
	"context"
	"errors"
)

// Slot names shared by every backend.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

var ErrNotFound = errors.New("session slot not found")

// Store holds the client-side session slots of one browser session.
// Get returns ErrNotFound for a slot that was never set or was cleared.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, keys ...string) error
}

// Backend hands out the Store of a given session id.
type Backend interface {
	Scope(sessionID string) Store
}
