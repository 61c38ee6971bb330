package loan

import "time"

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Known reports whether s is one of the statuses this client understands.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Loan mirrors the remote loan record. Payments are computed by the remote
// service and only carried here.
type Loan struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"userId"`
	UserName            string     `json:"userName"`
	UserEmail           string     `json:"userEmail"`
	Amount              float64    `json:"amount"`
	TermMonths          int        `json:"termMonths"`
	Purpose             string     `json:"purpose"`
	Status              Status     `json:"status"`
	MonthlyPayment      float64    `json:"monthlyPayment"`
	TotalPayment        float64    `json:"totalPayment"`
	RequestedAt         time.Time  `json:"requestedAt"`
	ProcessedAt         *time.Time `json:"processedAt,omitempty"`
	ProcessedByUserName *string    `json:"processedByUserName,omitempty"`
	RejectionReason     *string    `json:"rejectionReason,omitempty"`
}

// IsProcessed: Approved and Rejected are terminal.
func (l *Loan) IsProcessed() bool {
	return l.Status == StatusApproved || l.Status == StatusRejected
}

// CanBeProcessed reports whether an administrator may still approve or reject.
func (l *Loan) CanBeProcessed() bool { return l.Status == StatusPending }

type Request struct {
	Amount     float64 `json:"amount"`
	TermMonths int     `json:"termMonths"`
	Purpose    string  `json:"purpose"`
}

type RejectRequest struct {
	LoanID string `json:"loanId"`
	Reason string `json:"reason"`
}
