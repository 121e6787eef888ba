package domain

// LoanTerms describes a fixed-rate loan. AnnualRate is a decimal fraction
// (0.05 for 5%); zero means interest-free.
type LoanTerms struct {
	Principal  float64
	AnnualRate float64
	TermYears  int
}

func (t LoanTerms) MonthlyRate() float64 {
	return t.AnnualRate / 12
}

func (t LoanTerms) TotalMonths() int {
	return t.TermYears * 12
}

type PaymentLine struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	PrincipalPaid    float64 `json:"principal_paid"`
	InterestPaid     float64 `json:"interest_paid"`
	RemainingBalance float64 `json:"remaining_balance"`
}

type AmortizationResult struct {
	MonthlyPayment       float64       `json:"monthly_payment"`
	TotalInterest        float64       `json:"total_interest"`
	TotalAmount          float64       `json:"total_amount"`
	AmortizationSchedule []PaymentLine `json:"amortization_schedule"`
}
