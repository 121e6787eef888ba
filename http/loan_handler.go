package http

import (
	"net/http"

	"loan-calculator/logger"
	"loan-calculator/service"
)

const (
	invalidInputMessage = "Invalid input data"
	maxRequestBodyBytes = 1 << 16
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

// CalculateLoan serves POST /calculate.
func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		respondError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	log := logger.FromContext(r.Context())

	terms, err := ParseLoanRequest(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		log.InfoContext(r.Context(), "Rejected loan request", logger.FieldError, err)
		respondError(w, r, http.StatusBadRequest, invalidInputMessage)
		return
	}

	result := h.service.CalculateLoan(r.Context(), terms)

	log.DebugContext(r.Context(), "Loan calculated",
		"months", terms.TotalMonths(),
		"monthly_payment", result.MonthlyPayment,
	)

	respondJSON(w, r, http.StatusOK, result)
}
