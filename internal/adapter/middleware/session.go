package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"loan-portal/internal/domain/session"
	"loan-portal/internal/usecase/auth"
	"loan-portal/pkg/id"
	"loan-portal/pkg/token"
)

const (
	CookieName        = "loan_portal_sid"
	sessionContextKey = "portal.session"
)

type SessionConfig struct {
	Backend session.Backend
	TTL     time.Duration
	Secure  bool
}

// Session is the browser session behind the current request.
type Session struct {
	ID    string
	Store session.Store
	Auth  *auth.Session

	cfg SessionConfig
}

// Sessions resolves the session cookie into a Session on the echo context.
// Requests without a usable cookie get a fresh session id.
func Sessions(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(CookieName); err == nil && reHex32.MatchString(ck.Value) {
				sid = ck.Value
			}
			fresh := sid == ""
			if fresh {
				sid = id.NewID32()
			}

			store := cfg.Backend.Scope(sid)
			s := &Session{ID: sid, Store: store, Auth: auth.NewSession(store), cfg: cfg}
			if !fresh {
				if err := s.Auth.Restore(c.Request().Context()); err != nil {
					logrus.WithFields(logrus.Fields{"session": sid, "error": err}).Error("session restore failed")
					return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session store unavailable"})
				}
			} else {
				s.setCookie(c, nowUTC().Add(cfg.TTL))
			}

			c.Set(sessionContextKey, s)
			return next(c)
		}
	}
}

// SessionFrom returns nil outside the Sessions middleware.
func SessionFrom(c echo.Context) *Session {
	s, _ := c.Get(sessionContextKey).(*Session)
	return s
}

// Rotate moves the request onto a freshly issued session id and empties the
// old one. Called at sign-in so a session id chosen before authentication
// never becomes an authenticated one.
func (s *Session) Rotate(ctx context.Context) error {
	if err := s.Store.Clear(ctx, session.KeyToken, session.KeyUser); err != nil {
		return err
	}
	s.ID = id.NewID32()
	s.Store = s.cfg.Backend.Scope(s.ID)
	s.Auth = auth.NewSession(s.Store)
	return nil
}

// Refresh re-issues the cookie. It expires with the token, but never after
// the session TTL, since the stored slots expire then.
func (s *Session) Refresh(c echo.Context, raw string) {
	exp := nowUTC().Add(s.cfg.TTL)
	if tokExp, ok := token.ExpiresAt(raw); ok && tokExp.Before(exp) {
		exp = tokExp
	}
	s.setCookie(c, exp)
}

func (s *Session) Expire(c echo.Context) {
	dropCookie(c)
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Session) setCookie(c echo.Context, expires time.Time) {
	dropCookie(c)
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// dropCookie removes a session cookie already queued on this response, so
// the browser only ever receives the last one.
func dropCookie(c echo.Context) {
	h := c.Response().Header()
	var kept []string
	for _, v := range h.Values(echo.HeaderSetCookie) {
		if !strings.HasPrefix(v, CookieName+"=") {
			kept = append(kept, v)
		}
	}
	h.Del(echo.HeaderSetCookie)
	for _, v := range kept {
		h.Add(echo.HeaderSetCookie, v)
	}
}
