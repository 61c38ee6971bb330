package http

import (
	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/session"
	"loan-portal/internal/domain/user"
)

// Ports builds the outbound adapters for one browser session.
type Ports interface {
	Auth(store session.Store) user.AuthPort
	Loans(store session.Store) loan.Port
}
