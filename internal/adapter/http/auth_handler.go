package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-portal/internal/adapter/middleware"
	"loan-portal/internal/domain/user"
	"loan-portal/internal/usecase/auth"
)

type AuthHandler struct{ ports Ports }

func NewAuthHandler(p Ports) *AuthHandler { return &AuthHandler{ports: p} }

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirmPassword" validate:"omitempty,eqfield=Password"`
	FullName        string  `json:"fullName"`
	Role            *string `json:"role"            validate:"omitempty,oneof=User Admin"`
}

type userView struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// The token stays server-side; browsers only see who is signed in.
type sessionView struct {
	Authenticated bool      `json:"authenticated"`
	IsAdmin       bool      `json:"isAdmin"`
	IsUser        bool      `json:"isUser"`
	User          *userView `json:"user"`
}

func viewOf(s *auth.Session) sessionView {
	v := sessionView{Authenticated: s.IsAuthenticated(), IsAdmin: s.IsAdmin(), IsUser: s.IsUser()}
	if u := s.User(); u != nil {
		v.User = &userView{UserID: u.UserID, Email: u.Email, FullName: u.FullName, Role: u.Role}
	}
	return v
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	s := middleware.SessionFrom(c)
	ctx := c.Request().Context()

	resp, err := auth.NewUsecase(h.ports.Auth(s.Store)).Login(ctx, user.AuthCredentials(req))
	if err != nil {
		return respondError(c, err)
	}
	return h.signIn(c, s, resp, http.StatusOK)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, validationResponse(ToFieldErrors(err)))
	}
	s := middleware.SessionFrom(c)
	ctx := c.Request().Context()

	data := user.RegisterData{Email: req.Email, Password: req.Password, FullName: req.FullName}
	if req.Role != nil {
		r := user.Role(*req.Role)
		data.Role = &r
	}
	resp, err := auth.NewUsecase(h.ports.Auth(s.Store)).Register(ctx, data)
	if err != nil {
		return respondError(c, err)
	}
	return h.signIn(c, s, resp, http.StatusCreated)
}

// signIn moves the signed-in user onto a new session id before storing it.
func (h *AuthHandler) signIn(c echo.Context, s *middleware.Session, resp *user.AuthResponse, code int) error {
	ctx := c.Request().Context()
	if err := s.Rotate(ctx); err != nil {
		return respondError(c, err)
	}
	if err := s.Auth.Login(ctx, *resp); err != nil {
		return respondError(c, err)
	}
	s.Refresh(c, resp.Token)
	return c.JSON(code, viewOf(s.Auth))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	s := middleware.SessionFrom(c)
	ctx := c.Request().Context()

	if err := auth.NewUsecase(h.ports.Auth(s.Store)).Logout(ctx); err != nil {
		return respondError(c, err)
	}
	if err := s.Auth.Logout(ctx); err != nil {
		return respondError(c, err)
	}
	s.Expire(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, viewOf(middleware.SessionFrom(c).Auth))
}
