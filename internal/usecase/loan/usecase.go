package loan

import (
	"context"

	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/validation"
)

// Usecase validates loan operations and delegates each to exactly one port
// call. Port results and errors are returned untouched.
type Usecase struct{ port loan.Port }

func NewUsecase(p loan.Port) *Usecase { return &Usecase{port: p} }

func (u *Usecase) RequestLoan(ctx context.Context, req loan.Request) (*loan.Loan, error) {
	if err := validation.LoanAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validation.TermMonths(req.TermMonths); err != nil {
		return nil, err
	}
	if err := validation.LoanPurpose(req.Purpose); err != nil {
		return nil, err
	}
	return u.port.RequestLoan(ctx, req)
}

func (u *Usecase) GetMyLoans(ctx context.Context) ([]loan.Loan, error) {
	return u.port.GetMyLoans(ctx)
}

func (u *Usecase) GetAllLoans(ctx context.Context) ([]loan.Loan, error) {
	return u.port.GetAllLoans(ctx)
}

func (u *Usecase) ApproveLoan(ctx context.Context, loanID string) (*loan.Loan, error) {
	if err := validation.LoanID(loanID); err != nil {
		return nil, err
	}
	return u.port.ApproveLoan(ctx, loanID)
}

func (u *Usecase) RejectLoan(ctx context.Context, req loan.RejectRequest) (*loan.Loan, error) {
	if err := validation.LoanID(req.LoanID); err != nil {
		return nil, err
	}
	if err := validation.RejectionReason(req.Reason); err != nil {
		return nil, err
	}
	return u.port.RejectLoan(ctx, req)
}
