package user

import "time"

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// User is issued by the remote service and never edited client-side.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     *Role  `json:"role,omitempty"`
}

// AuthResponse is what login/register return and what the session keeps
// under the "user" slot. Role stays a plain string as the remote sends it.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func (r AuthResponse) HasRole(role Role) bool { return r.Role == string(role) }
