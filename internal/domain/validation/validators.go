package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxEmailLen    = 255
	MinPasswordLen = 6
	MaxPasswordLen = 100
	MinFullNameLen = 2
	MaxFullNameLen = 200

	MinLoanAmount = 1_000
	MaxLoanAmount = 1_000_000
	MinTermMonths = 6
	MaxTermMonths = 360

	MinTextLen = 10
	MaxTextLen = 500
)

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func runes(s string) int { return utf8.RuneCountInString(s) }

func Email(email string) error {
	if blank(email) {
		return fail("email", "Email is required")
	}
	if !reEmail.MatchString(email) {
		return fail("email", "Invalid email format")
	}
	if runes(email) > MaxEmailLen {
		return fail("email", "Email cannot exceed %d characters", MaxEmailLen)
	}
	return nil
}

// Password only checks length; whitespace counts.
func Password(password string) error {
	n := runes(password)
	switch {
	case n == 0:
		return fail("password", "Password is required")
	case n < MinPasswordLen:
		return fail("password", "Password must be at least %d characters", MinPasswordLen)
	case n > MaxPasswordLen:
		return fail("password", "Password cannot exceed %d characters", MaxPasswordLen)
	}
	return nil
}

func FullName(name string) error {
	if blank(name) {
		return fail("fullName", "Full name is required")
	}
	if runes(strings.TrimSpace(name)) < MinFullNameLen {
		return fail("fullName", "Full name must be at least %d characters", MinFullNameLen)
	}
	if runes(name) > MaxFullNameLen {
		return fail("fullName", "Full name cannot exceed %d characters", MaxFullNameLen)
	}
	return nil
}

// LoanAmount accepts amounts in [MinLoanAmount, MaxLoanAmount].
func LoanAmount(amount float64) error {
	switch {
	case amount <= 0:
		return fail("amount", "Loan amount must be greater than zero")
	case amount < MinLoanAmount:
		return fail("amount", "Loan amount must be at least $1,000")
	case amount > MaxLoanAmount:
		return fail("amount", "Loan amount cannot exceed $1,000,000")
	}
	return nil
}

// TermMonths accepts terms in [MinTermMonths, MaxTermMonths].
func TermMonths(months int) error {
	switch {
	case months < MinTermMonths:
		return fail("termMonths", "Loan term must be at least %d months", MinTermMonths)
	case months > MaxTermMonths:
		return fail("termMonths", "Loan term cannot exceed %d months (30 years)", MaxTermMonths)
	}
	return nil
}

func LoanPurpose(purpose string) error { return text("purpose", "Loan purpose", purpose) }

func RejectionReason(reason string) error { return text("reason", "Rejection reason", reason) }

// LoanID only requires a non-blank identifier; the format belongs to the remote service.
func LoanID(id string) error {
	if blank(id) {
		return fail("loanId", "Loan ID is required")
	}
	return nil
}

// text checks the trimmed minimum and the raw maximum.
func text(field, label, s string) error {
	if blank(s) {
		return fail(field, "%s is required", label)
	}
	if runes(strings.TrimSpace(s)) < MinTextLen {
		return fail(field, "%s must be at least %d characters", label, MinTextLen)
	}
	if runes(s) > MaxTextLen {
		return fail(field, "%s cannot exceed %d characters", label, MaxTextLen)
	}
	return nil
}
