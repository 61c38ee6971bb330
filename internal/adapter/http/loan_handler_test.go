package http

import (
	"context"
	stdhttp "net/http"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"loan-portal/internal/adapter/middleware"
	"loan-portal/internal/adapter/remote"
	"loan-portal/internal/domain/loan"
)

func TestLoanRoutes_RequireSignIn(t *testing.T) {
	p := newPorts()
	s := newServer(t, p)

	for _, r := range []struct{ method, path string }{
		{stdhttp.MethodPost, "/api/loans"},
		{stdhttp.MethodGet, "/api/loans/my-loans"},
		{stdhttp.MethodGet, "/api/loans"},
		{stdhttp.MethodPut, "/api/loans/LN-1/approve"},
		{stdhttp.MethodPut, "/api/loans/LN-1/reject"},
	} {
		rec := s.do(t, r.method, r.path, "", "")
		if rec.Code != stdhttp.StatusUnauthorized {
			t.Fatalf("%s %s => %d, want 401", r.method, r.path, rec.Code)
		}
		if got := decode[ErrorResponse](t, rec); got.Error != "authentication required" {
			t.Fatalf("unexpected body: %+v", got)
		}
	}
	if p.loans.Calls != 0 {
		t.Fatalf("port called %d times", p.loans.Calls)
	}
}

func TestLoanRoutes_AdminOnly(t *testing.T) {
	p := newPorts()
	s := newServer(t, p)
	sid := s.signedIn(t, "User")

	for _, r := range []struct{ method, path string }{
		{stdhttp.MethodGet, "/api/loans"},
		{stdhttp.MethodPut, "/api/loans/LN-1/approve"},
		{stdhttp.MethodPut, "/api/loans/LN-1/reject"},
	} {
		rec := s.do(t, r.method, r.path, `{"reason":"Insufficient income"}`, sid)
		if rec.Code != stdhttp.StatusForbidden {
			t.Fatalf("%s %s => %d, want 403", r.method, r.path, rec.Code)
		}
		if got := decode[ErrorResponse](t, rec); got.Error != "access denied" {
			t.Fatalf("unexpected body: %+v", got)
		}
	}
	if p.loans.Calls != 0 {
		t.Fatalf("port called %d times", p.loans.Calls)
	}
}

func TestRequestLoan(t *testing.T) {
	p := newPorts()
	p.loans.RequestLoanFn = func(ctx context.Context, req loan.Request) (*loan.Loan, error) {
		if req.Amount != 5000 || req.TermMonths != 12 || req.Purpose != "Home renovation project" {
			t.Fatalf("unexpected request: %+v", req)
		}
		l := pendingLoan("LN-1")
		return &l, nil
	}
	s := newServer(t, p)
	sid := s.signedIn(t, "User")

	rec := s.do(t, stdhttp.MethodPost, "/api/loans", `{"amount":5000,"termMonths":12,"purpose":"Home renovation project"}`, sid)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201 (body=%s)", rec.Code, rec.Body.String())
	}
	got := decode[loanView](t, rec)
	if got.ID != "LN-1" || got.Status != loan.StatusPending || !got.CanBeProcessed {
		t.Fatalf("unexpected loan: %+v", got)
	}
	if strings.Contains(rec.Body.String(), "processedAt") {
		t.Fatalf("pending loan must omit processedAt: %s", rec.Body.String())
	}
}

func TestRequestLoan_Invalid(t *testing.T) {
	tests := []struct {
		name, body, field, msg string
		code                   int
	}{
		{"below minimum", `{"amount":999,"termMonths":12,"purpose":"Home renovation project"}`, "amount", "at least $1,000", 422},
		{"zero", `{"amount":0,"termMonths":12,"purpose":"Home renovation project"}`, "amount", "greater than zero", 422},
		{"three decimals", `{"amount":5000.125,"termMonths":12,"purpose":"Home renovation project"}`, "amount", "2 decimal places", 422},
		{"term too long", `{"amount":5000,"termMonths":361,"purpose":"Home renovation project"}`, "termMonths", "cannot exceed 360", 422},
		{"short purpose", `{"amount":5000,"termMonths":12,"purpose":"car"}`, "purpose", "at least 10", 422},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPorts()
			s := newServer(t, p)
			rec := s.do(t, stdhttp.MethodPost, "/api/loans", tt.body, s.signedIn(t, "User"))
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d (body=%s)", rec.Code, tt.code, rec.Body.String())
			}
			if got := decode[ErrorResponse](t, rec); !containsFieldMsg(got.Details, tt.field, tt.msg) {
				t.Fatalf("expected %s/%q in %+v", tt.field, tt.msg, got)
			}
			if p.loans.Calls != 0 {
				t.Fatalf("port must not be called")
			}
		})
	}

	s := newServer(t, newPorts())
	rec := s.do(t, stdhttp.MethodPost, "/api/loans", `{"amount":"lots"}`, s.signedIn(t, "User"))
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("wrong type => %d, want 400", rec.Code)
	}
}

func TestListLoans(t *testing.T) {
	approved := pendingLoan("LN-2")
	approved.Status = loan.StatusApproved
	at := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	approved.ProcessedAt = &at

	p := newPorts()
	p.loans.GetMyLoansFn = func(context.Context) ([]loan.Loan, error) { return nil, nil }
	p.loans.GetAllLoansFn = func(context.Context) ([]loan.Loan, error) {
		return []loan.Loan{pendingLoan("LN-1"), approved}, nil
	}
	s := newServer(t, p)

	rec := s.do(t, stdhttp.MethodGet, "/api/loans/my-loans", "", s.signedIn(t, "User"))
	if rec.Code != stdhttp.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("my-loans => %d %s, want 200 []", rec.Code, rec.Body.String())
	}

	rec = s.do(t, stdhttp.MethodGet, "/api/loans", "", s.signedIn(t, "Admin"))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("all loans => %d, want 200", rec.Code)
	}
	got := decode[[]loanView](t, rec)
	if len(got) != 2 || !got[0].CanBeProcessed || got[1].CanBeProcessed {
		t.Fatalf("unexpected list: %+v", got)
	}
	if got[1].ProcessedAt == nil || !got[1].ProcessedAt.Equal(at) {
		t.Fatalf("processedAt lost: %+v", got[1])
	}
}

func TestApproveAndReject(t *testing.T) {
	p := newPorts()
	p.loans.ApproveLoanFn = func(ctx context.Context, id string) (*loan.Loan, error) {
		if id != "LN-7" {
			t.Fatalf("approve id = %q", id)
		}
		l := pendingLoan(id)
		l.Status = loan.StatusApproved
		return &l, nil
	}
	p.loans.RejectLoanFn = func(ctx context.Context, req loan.RejectRequest) (*loan.Loan, error) {
		if req.LoanID != "LN-8" || req.Reason != "Insufficient income" {
			t.Fatalf("unexpected reject: %+v", req)
		}
		l := pendingLoan(req.LoanID)
		l.Status = loan.StatusRejected
		l.RejectionReason = &req.Reason
		return &l, nil
	}
	s := newServer(t, p)
	sid := s.signedIn(t, "Admin")

	rec := s.do(t, stdhttp.MethodPut, "/api/loans/LN-7/approve", "", sid)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("approve => %d, want 200 (body=%s)", rec.Code, rec.Body.String())
	}
	if got := decode[loanView](t, rec); got.Status != loan.StatusApproved || got.CanBeProcessed {
		t.Fatalf("unexpected loan: %+v", got)
	}

	rec = s.do(t, stdhttp.MethodPut, "/api/loans/LN-8/reject", `{"reason":"Insufficient income"}`, sid)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("reject => %d, want 200 (body=%s)", rec.Code, rec.Body.String())
	}
	got := decode[loanView](t, rec)
	if got.Status != loan.StatusRejected || got.RejectionReason == nil || *got.RejectionReason != "Insufficient income" {
		t.Fatalf("unexpected loan: %+v", got)
	}

	rec = s.do(t, stdhttp.MethodPut, "/api/loans/LN-8/reject", `{"reason":"no"}`, sid)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("short reason => %d, want 422", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec); !containsFieldMsg(got.Details, "reason", "at least 10") {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestApprove_RemoteNotFound(t *testing.T) {
	p := newPorts()
	p.loans.ApproveLoanFn = func(context.Context, string) (*loan.Loan, error) {
		return nil, &remote.Error{Op: remote.OpApproveLoan, Message: "Loan not found", StatusCode: 404}
	}
	s := newServer(t, p)

	rec := s.do(t, stdhttp.MethodPut, "/api/loans/LN-404/approve", "", s.signedIn(t, "Admin"))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec); got.Error != "Loan not found" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestRequestLoan_IdempotentReplay(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	p := newPorts()
	p.loans.RequestLoanFn = func(context.Context, loan.Request) (*loan.Loan, error) {
		l := pendingLoan("LN-1")
		return &l, nil
	}
	s := newServer(t, p, func(d *Deps) {
		d.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		d.IdempotencyTTL = time.Minute
	})
	sid := s.signedIn(t, "User")

	body := `{"amount":5000,"termMonths":12,"purpose":"Home renovation project"}`
	var first string
	for i := 0; i < 2; i++ {
		req := newRequest(stdhttp.MethodPost, "/api/loans", body, sid)
		req.Header.Set(middleware.HeaderIdempotencyKey, "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88")
		req.Header.Set(middleware.HeaderRequestAt, time.Now().UTC().Format(time.RFC3339))
		rec := s.serve(req)
		if rec.Code != stdhttp.StatusCreated {
			t.Fatalf("attempt %d => %d, want 201 (body=%s)", i, rec.Code, rec.Body.String())
		}
		if i == 0 {
			first = rec.Body.String()
		} else if rec.Body.String() != first {
			t.Fatalf("replay body mismatch: %q vs %q", rec.Body.String(), first)
		}
	}
	if p.loans.Calls != 1 {
		t.Fatalf("port calls = %d, want 1", p.loans.Calls)
	}
}

func TestApproveLoan_IdempotencyKeyIsPerLoan(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	var approved []string
	p := newPorts()
	p.loans.ApproveLoanFn = func(ctx context.Context, id string) (*loan.Loan, error) {
		approved = append(approved, id)
		l := pendingLoan(id)
		l.Status = loan.StatusApproved
		return &l, nil
	}
	s := newServer(t, p, func(d *Deps) {
		d.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		d.IdempotencyTTL = time.Minute
	})
	sid := s.signedIn(t, "Admin")

	for _, id := range []string{"LN-A", "LN-B"} {
		req := newRequest(stdhttp.MethodPut, "/api/loans/"+id+"/approve", "", sid)
		req.Header.Set(middleware.HeaderIdempotencyKey, "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88")
		req.Header.Set(middleware.HeaderRequestAt, time.Now().UTC().Format(time.RFC3339))
		rec := s.serve(req)
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("%s => %d, want 200 (body=%s)", id, rec.Code, rec.Body.String())
		}
		if got := decode[loanView](t, rec); got.ID != id {
			t.Fatalf("%s answered with loan %s", id, got.ID)
		}
	}
	if len(approved) != 2 || approved[0] != "LN-A" || approved[1] != "LN-B" {
		t.Fatalf("approved = %v, want [LN-A LN-B]", approved)
	}
}
