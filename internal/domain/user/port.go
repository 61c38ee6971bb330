package user

import "context"

// AuthPort is the authentication capability the use cases depend on.
type AuthPort interface {
	Login(ctx context.Context, creds AuthCredentials) (*AuthResponse, error)
	Register(ctx context.Context, data RegisterData) (*AuthResponse, error)
	Logout(ctx context.Context) error
	GetToken(ctx context.Context) (string, bool)
	IsAuthenticated(ctx context.Context) bool
	// GetUserRole reports false when no user is stored or the snapshot is unreadable.
	GetUserRole(ctx context.Context) (string, bool)
}
