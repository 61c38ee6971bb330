package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequireRole lets a request through when the signed-in user's role is
// allowed the request path and method by the enforcer.
func RequireRole(e *casbin.Enforcer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := SessionFrom(c)
			if s == nil || !s.Auth.IsAuthenticated() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}

			req := c.Request()
			role := s.Auth.User().Role
			ok, err := e.Enforce(role, req.URL.Path, req.Method)
			if err != nil {
				logrus.WithFields(logrus.Fields{"role": role, "path": req.URL.Path, "error": err}).Error("policy check failed")
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "policy check failed"})
			}
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
			}
			return next(c)
		}
	}
}
