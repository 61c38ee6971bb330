package authmock

import (
	"context"
	"errors"

	"loan-portal/internal/domain/user"
)

var ErrNotImplemented = errors.New("authmock: not implemented")

// Port is a function-backed mock that satisfies user.AuthPort.
type Port struct {
	LoginFn           func(ctx context.Context, creds user.AuthCredentials) (*user.AuthResponse, error)
	RegisterFn        func(ctx context.Context, data user.RegisterData) (*user.AuthResponse, error)
	LogoutFn          func(ctx context.Context) error
	GetTokenFn        func(ctx context.Context) (string, bool)
	IsAuthenticatedFn func(ctx context.Context) bool
	GetUserRoleFn     func(ctx context.Context) (string, bool)

	Calls int
}

func (m *Port) Login(ctx context.Context, creds user.AuthCredentials) (*user.AuthResponse, error) {
	m.Calls++
	if m.LoginFn != nil {
		return m.LoginFn(ctx, creds)
	}
	return nil, ErrNotImplemented
}

func (m *Port) Register(ctx context.Context, data user.RegisterData) (*user.AuthResponse, error) {
	m.Calls++
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, data)
	}
	return nil, ErrNotImplemented
}

func (m *Port) Logout(ctx context.Context) error {
	m.Calls++
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx)
	}
	return nil
}

func (m *Port) GetToken(ctx context.Context) (string, bool) {
	if m.GetTokenFn != nil {
		return m.GetTokenFn(ctx)
	}
	return "", false
}

func (m *Port) IsAuthenticated(ctx context.Context) bool {
	if m.IsAuthenticatedFn != nil {
		return m.IsAuthenticatedFn(ctx)
	}
	return false
}

func (m *Port) GetUserRole(ctx context.Context) (string, bool) {
	if m.GetUserRoleFn != nil {
		return m.GetUserRoleFn(ctx)
	}
	return "", false
}
