package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/session"
)

// loanDTO is the wire shape of a loan; dates are ISO-8601 strings.
type loanDTO struct {
	ID                  string  `json:"id"`
	UserID              string  `json:"userId"`
	UserName            string  `json:"userName"`
	UserEmail           string  `json:"userEmail"`
	Amount              float64 `json:"amount"`
	TermMonths          int     `json:"termMonths"`
	Purpose             string  `json:"purpose"`
	Status              string  `json:"status"`
	MonthlyPayment      float64 `json:"monthlyPayment"`
	TotalPayment        float64 `json:"totalPayment"`
	RequestedAt         string  `json:"requestedAt"`
	ProcessedAt         *string `json:"processedAt,omitempty"`
	ProcessedByUserName *string `json:"processedByUserName,omitempty"`
	RejectionReason     *string `json:"rejectionReason,omitempty"`
}

type rejectBody struct {
	Reason string `json:"reason"`
}

// parseDate accepts RFC 3339 with or without fractional seconds, and the
// zone-less form some servers emit (read as UTC).
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02T15:04:05.999999999", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// toLoan maps the wire shape into the domain. The status string is carried
// over as-is; unknown values are logged, not rejected.
func (d loanDTO) toLoan() (loan.Loan, error) {
	requested, err := parseDate(d.RequestedAt)
	if err != nil {
		return loan.Loan{}, err
	}
	l := loan.Loan{
		ID:                  d.ID,
		UserID:              d.UserID,
		UserName:            d.UserName,
		UserEmail:           d.UserEmail,
		Amount:              d.Amount,
		TermMonths:          d.TermMonths,
		Purpose:             d.Purpose,
		Status:              loan.Status(d.Status),
		MonthlyPayment:      d.MonthlyPayment,
		TotalPayment:        d.TotalPayment,
		RequestedAt:         requested,
		ProcessedByUserName: d.ProcessedByUserName,
		RejectionReason:     d.RejectionReason,
	}
	if d.ProcessedAt != nil && *d.ProcessedAt != "" {
		processed, err := parseDate(*d.ProcessedAt)
		if err != nil {
			return loan.Loan{}, err
		}
		l.ProcessedAt = &processed
	}
	if !l.Status.Known() {
		logrus.WithFields(logrus.Fields{"loan_id": d.ID, "status": d.Status}).Warn("loan api returned unknown status")
	}
	return l, nil
}

// LoanAdapter implements loan.Port against the loan API, authenticating
// with the token kept in the session store.
type LoanAdapter struct {
	client *Client
	store  session.Store
}

var _ loan.Port = (*LoanAdapter)(nil)

func NewLoanAdapter(c *Client, store session.Store) *LoanAdapter {
	return &LoanAdapter{client: c, store: store}
}

func (a *LoanAdapter) token(ctx context.Context) string {
	tok, err := a.store.Get(ctx, session.KeyToken)
	if err != nil {
		return ""
	}
	return tok
}

func (a *LoanAdapter) one(ctx context.Context, op, method, path string, in any) (*loan.Loan, error) {
	var dto loanDTO
	if err := a.client.Do(ctx, method, path, a.token(ctx), in, &dto); err != nil {
		return nil, wrap(op, err)
	}
	l, err := dto.toLoan()
	if err != nil {
		return nil, wrap(op, err)
	}
	return &l, nil
}

func (a *LoanAdapter) list(ctx context.Context, op, path string) ([]loan.Loan, error) {
	var dtos []loanDTO
	if err := a.client.Do(ctx, http.MethodGet, path, a.token(ctx), nil, &dtos); err != nil {
		return nil, wrap(op, err)
	}
	out := make([]loan.Loan, 0, len(dtos))
	for _, d := range dtos {
		l, err := d.toLoan()
		if err != nil {
			return nil, wrap(op, err)
		}
		out = append(out, l)
	}
	return out, nil
}

func (a *LoanAdapter) RequestLoan(ctx context.Context, req loan.Request) (*loan.Loan, error) {
	return a.one(ctx, OpRequestLoan, http.MethodPost, "/loans", req)
}

func (a *LoanAdapter) GetMyLoans(ctx context.Context) ([]loan.Loan, error) {
	return a.list(ctx, OpGetMyLoans, "/loans/my-loans")
}

func (a *LoanAdapter) GetAllLoans(ctx context.Context) ([]loan.Loan, error) {
	return a.list(ctx, OpGetAllLoans, "/loans")
}

func (a *LoanAdapter) ApproveLoan(ctx context.Context, loanID string) (*loan.Loan, error) {
	return a.one(ctx, OpApproveLoan, http.MethodPut, "/loans/"+url.PathEscape(loanID)+"/approve", nil)
}

func (a *LoanAdapter) RejectLoan(ctx context.Context, req loan.RejectRequest) (*loan.Loan, error) {
	return a.one(ctx, OpRejectLoan, http.MethodPut, "/loans/"+url.PathEscape(req.LoanID)+"/reject", rejectBody{Reason: req.Reason})
}
