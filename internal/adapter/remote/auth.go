package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"loan-portal/internal/domain/session"
	"loan-portal/internal/domain/user"
)

// AuthAdapter implements user.AuthPort against the loan API and keeps the
// session token and user snapshot in the injected store.
type AuthAdapter struct {
	client *Client
	store  session.Store
}

var _ user.AuthPort = (*AuthAdapter)(nil)

func NewAuthAdapter(c *Client, store session.Store) *AuthAdapter {
	return &AuthAdapter{client: c, store: store}
}

func (a *AuthAdapter) Login(ctx context.Context, creds user.AuthCredentials) (*user.AuthResponse, error) {
	return a.authenticate(ctx, OpLogin, "/auth/login", creds)
}

func (a *AuthAdapter) Register(ctx context.Context, data user.RegisterData) (*user.AuthResponse, error) {
	return a.authenticate(ctx, OpRegister, "/auth/register", data)
}

func (a *AuthAdapter) authenticate(ctx context.Context, op, path string, body any) (*user.AuthResponse, error) {
	var resp user.AuthResponse
	if err := a.client.Do(ctx, http.MethodPost, path, "", body, &resp); err != nil {
		logrus.WithFields(logrus.Fields{"op": op, "error": err}).Info("auth request failed")
		return nil, wrap(op, err)
	}
	if err := a.persist(ctx, resp); err != nil {
		return nil, wrap(op, err)
	}
	return &resp, nil
}

// persist writes both slots; a half-written session is cleared again.
func (a *AuthAdapter) persist(ctx context.Context, resp user.AuthResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := a.store.Set(ctx, session.KeyToken, resp.Token); err != nil {
		return err
	}
	if err := a.store.Set(ctx, session.KeyUser, string(raw)); err != nil {
		_ = a.store.Clear(ctx, session.KeyToken)
		return err
	}
	return nil
}

func (a *AuthAdapter) Logout(ctx context.Context) error {
	return a.store.Clear(ctx, session.KeyToken, session.KeyUser)
}

func (a *AuthAdapter) GetToken(ctx context.Context) (string, bool) {
	tok, err := a.store.Get(ctx, session.KeyToken)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			logrus.WithError(err).Warn("session: token lookup failed")
		}
		return "", false
	}
	return tok, true
}

// IsAuthenticated only checks that a token is stored.
func (a *AuthAdapter) IsAuthenticated(ctx context.Context) bool {
	_, ok := a.GetToken(ctx)
	return ok
}

// GetUserRole reads the role from the stored user snapshot. A missing or
// unreadable snapshot means no role; read failures are logged only.
func (a *AuthAdapter) GetUserRole(ctx context.Context) (string, bool) {
	raw, err := a.store.Get(ctx, session.KeyUser)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			logrus.WithError(err).Warn("session: user lookup failed")
		}
		return "", false
	}
	var snap struct {
		Role *string `json:"role"`
	}
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		logrus.WithError(err).Warn("session: unreadable user snapshot")
		return "", false
	}
	if snap.Role == nil {
		return "", false
	}
	return *snap.Role, true
}
