package service

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"loan-calculator/domain"
)

// roundTo2Decimals redondea un float64 a 2 decimales sobre su valor binario
// exacto; los empates exactos van al par
func roundTo2Decimals(value float64) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 2, 64), 64)
	return rounded
}

// MonthlyPayment returns the fixed payment that amortizes the loan in
// exactly TotalMonths equal installments. Inputs are assumed valid.
func MonthlyPayment(terms domain.LoanTerms) float64 {
	r := terms.MonthlyRate()
	n := float64(terms.TotalMonths())

	if r == 0 {
		return terms.Principal / n
	}

	growth := math.Pow(1+r, n)
	return terms.Principal * r * growth / (growth - 1)
}

// Schedule builds the month-by-month amortization table. Monetary values are
// rounded per line; the running balance is kept unrounded.
func Schedule(terms domain.LoanTerms) []domain.PaymentLine {
	n := terms.TotalMonths()
	r := terms.MonthlyRate()
	payment := MonthlyPayment(terms)
	balance := terms.Principal

	schedule := make([]domain.PaymentLine, 0, n)
	for month := 1; month <= n; month++ {
		interest := balance * r
		principalPaid := payment - interest
		balance -= principalPaid

		// Drift on the last installment can push the balance below zero.
		if balance < 0 {
			principalPaid += balance
			balance = 0
		}

		schedule = append(schedule, domain.PaymentLine{
			Month:            month,
			Payment:          roundTo2Decimals(payment),
			PrincipalPaid:    roundTo2Decimals(principalPaid),
			InterestPaid:     roundTo2Decimals(interest),
			RemainingBalance: roundTo2Decimals(balance),
		})
	}

	return schedule
}

// TotalInterest sums the rounded interest of a freshly computed schedule.
// The sum is exact; only the conversion back to float64 can be inexact.
func TotalInterest(terms domain.LoanTerms) float64 {
	return sumInterest(Schedule(terms)).InexactFloat64()
}

// Calculate produces the payment, schedule and totals for the given terms.
func Calculate(terms domain.LoanTerms) domain.AmortizationResult {
	schedule := Schedule(terms)
	interest := sumInterest(schedule).InexactFloat64()

	return domain.AmortizationResult{
		MonthlyPayment:       roundTo2Decimals(MonthlyPayment(terms)),
		TotalInterest:        roundTo2Decimals(interest),
		TotalAmount:          roundTo2Decimals(terms.Principal + interest),
		AmortizationSchedule: schedule,
	}
}

func sumInterest(schedule []domain.PaymentLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range schedule {
		total = total.Add(decimal.NewFromFloat(line.InterestPaid))
	}
	return total
}
