package auth

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"loan-portal/internal/domain/session"
	"loan-portal/internal/domain/user"
)

// Session is the signed-in state of one browser session, backed by the
// token/user slots of a session.Store.
type Session struct {
	store session.Store
	user  *user.AuthResponse
}

func NewSession(store session.Store) *Session { return &Session{store: store} }

// Restore loads the user from the store. Both slots must be present and
// the token non-empty. An unreadable user snapshot is logged and both slots
// are cleared; the session then stays signed out.
func (s *Session) Restore(ctx context.Context) error {
	s.user = nil

	token, err := s.store.Get(ctx, session.KeyToken)
	if errors.Is(err, session.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	raw, err := s.store.Get(ctx, session.KeyUser)
	if errors.Is(err, session.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var u user.AuthResponse
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		logrus.WithError(err).Warn("session: discarding unreadable user snapshot")
		return s.store.Clear(ctx, session.KeyToken, session.KeyUser)
	}
	if u.Token == "" {
		u.Token = token
	}
	s.user = &u
	return nil
}

func (s *Session) Login(ctx context.Context, resp user.AuthResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, session.KeyToken, resp.Token); err != nil {
		return err
	}
	if err := s.store.Set(ctx, session.KeyUser, string(raw)); err != nil {
		return err
	}
	s.user = &resp
	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	s.user = nil
	return s.store.Clear(ctx, session.KeyToken, session.KeyUser)
}

// User returns nil when signed out.
func (s *Session) User() *user.AuthResponse { return s.user }

func (s *Session) IsAuthenticated() bool { return s.user != nil }

func (s *Session) IsAdmin() bool { return s.user != nil && s.user.HasRole(user.RoleAdmin) }

func (s *Session) IsUser() bool { return s.user != nil && s.user.HasRole(user.RoleUser) }
