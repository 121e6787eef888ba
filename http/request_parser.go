package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"loan-calculator/domain"
	"loan-calculator/service"
)

// ErrInvalidInput covers every reason a calculation request is rejected.
var ErrInvalidInput = errors.New("invalid input data")

const (
	fieldPrincipal  = "principal"
	fieldAnnualRate = "annual_rate"
	fieldTermYears  = "term_years"
)

// ParseLoanRequest decodes a calculation request. Each field may be a JSON
// number or a numeric string; annual_rate is a percentage and is returned
// as a decimal fraction. Every error wraps ErrInvalidInput.
func ParseLoanRequest(body io.Reader) (domain.LoanTerms, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return domain.LoanTerms{}, fmt.Errorf("%w: decode body: %v", ErrInvalidInput, err)
	}

	principal, err := floatField(fields, fieldPrincipal)
	if err != nil {
		return domain.LoanTerms{}, err
	}
	ratePercent, err := floatField(fields, fieldAnnualRate)
	if err != nil {
		return domain.LoanTerms{}, err
	}
	years, err := intField(fields, fieldTermYears)
	if err != nil {
		return domain.LoanTerms{}, err
	}

	if principal <= 0 || principal > service.MaxPrincipal {
		return domain.LoanTerms{}, fmt.Errorf("%w: %s %v out of range", ErrInvalidInput, fieldPrincipal, principal)
	}
	if ratePercent < 0 || ratePercent > service.MaxAnnualRatePercent {
		return domain.LoanTerms{}, fmt.Errorf("%w: %s %v out of range", ErrInvalidInput, fieldAnnualRate, ratePercent)
	}
	if years < service.MinTermYears || years > service.MaxTermYears {
		return domain.LoanTerms{}, fmt.Errorf("%w: %s %d out of range", ErrInvalidInput, fieldTermYears, years)
	}

	return domain.LoanTerms{
		Principal:  principal,
		AnnualRate: ratePercent / 100,
		TermYears:  years,
	}, nil
}

func floatField(fields map[string]any, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidInput, name)
	}

	var (
		f   float64
		err error
	)
	switch v := raw.(type) {
	case json.Number:
		f, err = v.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("%w: %s has unsupported type %T", ErrInvalidInput, name, raw)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidInput, name, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s is not finite", ErrInvalidInput, name)
	}
	return f, nil
}

// intField accepts integer strings, and truncates JSON numbers toward zero.
func intField(fields map[string]any, name string) (int, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidInput, name)
	}

	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return clampInt(i), nil
		}
		f, err := v.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidInput, name, v.String())
		}
		return clampInt(int64(math.Max(math.Min(math.Trunc(f), math.MaxInt32), math.MinInt32))), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidInput, name, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: %s has unsupported type %T", ErrInvalidInput, name, raw)
	}
}

// clampInt keeps oversized terms out of the int range so they fail the
// range check instead of overflowing.
func clampInt(i int64) int {
	if i > math.MaxInt32 {
		return math.MaxInt32
	}
	if i < math.MinInt32 {
		return math.MinInt32
	}
	return int(i)
}
