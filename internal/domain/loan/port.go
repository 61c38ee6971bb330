package loan

import "context"

type Port interface {
	RequestLoan(ctx context.Context, req Request) (*Loan, error)
	// GetMyLoans lists the caller's own loans.
	GetMyLoans(ctx context.Context) ([]Loan, error)
	// GetAllLoans lists every loan; the remote service restricts it to administrators.
	GetAllLoans(ctx context.Context) ([]Loan, error)
	ApproveLoan(ctx context.Context, loanID string) (*Loan, error)
	RejectLoan(ctx context.Context, req RejectRequest) (*Loan, error)
}
