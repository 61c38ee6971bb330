package remote

import "errors"

// Operation names, also used as log fields.
const (
	OpLogin       = "login"
	OpRegister    = "register"
	OpRequestLoan = "requestLoan"
	OpGetMyLoans  = "getMyLoans"
	OpGetAllLoans = "getAllLoans"
	OpApproveLoan = "approveLoan"
	OpRejectLoan  = "rejectLoan"
)

var fallbackMessages = map[string]string{
	OpLogin:       "Login failed. Please check your credentials.",
	OpRegister:    "Registration failed. Please try again.",
	OpRequestLoan: "Failed to request loan. Please try again.",
	OpGetMyLoans:  "Failed to fetch your loans.",
	OpGetAllLoans: "Failed to fetch loans.",
	OpApproveLoan: "Failed to approve loan.",
	OpRejectLoan:  "Failed to reject loan.",
}

// Error is a failed remote operation reduced to a user-facing message.
// The underlying cause stays reachable through errors.Unwrap.
type Error struct {
	Op         string
	Message    string
	StatusCode int // 0 when no HTTP answer was received
	Err        error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// wrap prefers the message sent by the API and falls back to the fixed
// message of the operation.
func wrap(op string, err error) error {
	e := &Error{Op: op, Message: fallbackMessages[op], Err: err}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		e.StatusCode = apiErr.StatusCode
		if apiErr.Message != "" {
			e.Message = apiErr.Message
		}
	}
	return e
}
