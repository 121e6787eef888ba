// Command loan-demo prints a sample amortization to stdout without
// starting the HTTP server.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"loan-calculator/domain"
	"loan-calculator/service"
)

func main() {
	principal := flag.Float64("principal", 10000, "loan amount")
	ratePercent := flag.Float64("rate", 5, "annual interest rate in percent")
	years := flag.Int("years", 2, "loan term in years")
	lines := flag.Int("lines", 5, "number of schedule lines to print")
	flag.Parse()

	if *principal <= 0 || *principal > service.MaxPrincipal ||
		*ratePercent < 0 || *ratePercent > service.MaxAnnualRatePercent ||
		*years < service.MinTermYears || *years > service.MaxTermYears {
		fmt.Fprintln(os.Stderr, "invalid loan terms")
		flag.Usage()
		os.Exit(2)
	}

	terms := domain.LoanTerms{
		Principal:  *principal,
		AnnualRate: *ratePercent / 100,
		TermYears:  *years,
	}
	result := service.Calculate(terms)

	fmt.Printf("Loan: %.2f at %.2f%% for %d years (%d payments)\n",
		terms.Principal, *ratePercent, terms.TermYears, terms.TotalMonths())
	fmt.Printf("Monthly payment: %.2f\n\n", result.MonthlyPayment)

	n := *lines
	if n > len(result.AmortizationSchedule) {
		n = len(result.AmortizationSchedule)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tPayment\tPrincipal\tInterest\tBalance\t")
	for _, line := range result.AmortizationSchedule[:max(n, 0)] {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			line.Month, line.Payment, line.PrincipalPaid, line.InterestPaid, line.RemainingBalance)
	}
	_ = tw.Flush()

	fmt.Printf("\nTotal interest: %.2f\n", result.TotalInterest)
	fmt.Printf("Total amount:   %.2f\n", result.TotalAmount)
}
