package loanmock

import (
	"context"
	"errors"

	domain "loan-portal/internal/domain/loan"
)

var ErrNotImplemented = errors.New("loanmock: not implemented")

// Port is a function-backed mock that satisfies domain.Port.
// A nil func returns ErrNotImplemented so unexpected calls surface in tests.
type Port struct {
	RequestLoanFn func(ctx context.Context, req domain.Request) (*domain.Loan, error)
	GetMyLoansFn  func(ctx context.Context) ([]domain.Loan, error)
	GetAllLoansFn func(ctx context.Context) ([]domain.Loan, error)
	ApproveLoanFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	RejectLoanFn  func(ctx context.Context, req domain.RejectRequest) (*domain.Loan, error)

	Calls int
}

func (m *Port) RequestLoan(ctx context.Context, req domain.Request) (*domain.Loan, error) {
	m.Calls++
	if m.RequestLoanFn != nil {
		return m.RequestLoanFn(ctx, req)
	}
	return nil, ErrNotImplemented
}

func (m *Port) GetMyLoans(ctx context.Context) ([]domain.Loan, error) {
	m.Calls++
	if m.GetMyLoansFn != nil {
		return m.GetMyLoansFn(ctx)
	}
	return nil, ErrNotImplemented
}

func (m *Port) GetAllLoans(ctx context.Context) ([]domain.Loan, error) {
	m.Calls++
	if m.GetAllLoansFn != nil {
		return m.GetAllLoansFn(ctx)
	}
	return nil, ErrNotImplemented
}

func (m *Port) ApproveLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	m.Calls++
	if m.ApproveLoanFn != nil {
		return m.ApproveLoanFn(ctx, loanID)
	}
	return nil, ErrNotImplemented
}

func (m *Port) RejectLoan(ctx context.Context, req domain.RejectRequest) (*domain.Loan, error) {
	m.Calls++
	if m.RejectLoanFn != nil {
		return m.RejectLoanFn(ctx, req)
	}
	return nil, ErrNotImplemented
}
