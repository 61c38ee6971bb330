package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-portal/internal/adapter/middleware"
	"loan-portal/internal/domain/loan"
	uc "loan-portal/internal/usecase/loan"
)

type LoanHandler struct{ ports Ports }

func NewLoanHandler(p Ports) *LoanHandler { return &LoanHandler{ports: p} }

type requestLoanReq struct {
	Amount     float64 `json:"amount"     validate:"dec2"`
	TermMonths int     `json:"termMonths"`
	Purpose    string  `json:"purpose"`
}

type rejectLoanReq struct {
	Reason string `json:"reason"`
}

type loanView struct {
	loan.Loan
	CanBeProcessed bool `json:"canBeProcessed"`
}

func toView(l loan.Loan) loanView { return loanView{Loan: l, CanBeProcessed: l.CanBeProcessed()} }

func toViews(ls []loan.Loan) []loanView {
	out := make([]loanView, 0, len(ls))
	for _, l := range ls {
		out = append(out, toView(l))
	}
	return out
}

func (h *LoanHandler) usecase(c echo.Context) *uc.Usecase {
	return uc.NewUsecase(h.ports.Loans(middleware.SessionFrom(c).Store))
}

func (h *LoanHandler) RequestLoan(c echo.Context) error {
	var req requestLoanReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, validationResponse(ToFieldErrors(err)))
	}
	l, err := h.usecase(c).RequestLoan(c.Request().Context(), loan.Request(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toView(*l))
}

func (h *LoanHandler) MyLoans(c echo.Context) error {
	ls, err := h.usecase(c).GetMyLoans(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toViews(ls))
}

func (h *LoanHandler) AllLoans(c echo.Context) error {
	ls, err := h.usecase(c).GetAllLoans(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toViews(ls))
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	l, err := h.usecase(c).ApproveLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toView(*l))
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	var req rejectLoanReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	l, err := h.usecase(c).RejectLoan(c.Request().Context(), loan.RejectRequest{
		LoanID: c.Param("loan_id"),
		Reason: req.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toView(*l))
}
