package validation

import "fmt"

// Error is a field-level business rule violation. It is raised before any
// remote call and its Message is safe to show to the end user.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

func fail(field, format string, args ...any) error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}
