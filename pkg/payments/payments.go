// Package payments solves level payments for fixed-rate mortgages and
// assembles quotes across the six payment schemes.
package payments

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-plan/pkg/rates"
)

// ErrInvalidInput indicates loan parameters rejected before any computation.
var ErrInvalidInput = errors.New("invalid loan input")

// Scheme identifies one of the six payment schemes.
type Scheme string

// The six payment schemes. Accelerated schemes pay a fraction of the monthly
// payment at the bi-weekly or weekly frequency.
const (
	Monthly             Scheme = "monthly"
	SemiMonthly         Scheme = "semi-monthly"
	BiWeekly            Scheme = "bi-weekly"
	AcceleratedBiWeekly Scheme = "accelerated-bi-weekly"
	Weekly              Scheme = "weekly"
	AcceleratedWeekly   Scheme = "accelerated-weekly"
)

// AllSchemes lists the six schemes in presentation order.
var AllSchemes = []Scheme{Monthly, SemiMonthly, BiWeekly, AcceleratedBiWeekly, Weekly, AcceleratedWeekly}

// Frequency returns the base payment frequency whose periodic rate drives the
// scheme's schedule.
func (s Scheme) Frequency() rates.Frequency {
	switch s {
	case Monthly:
		return rates.Monthly
	case SemiMonthly:
		return rates.SemiMonthly
	case BiWeekly, AcceleratedBiWeekly:
		return rates.BiWeekly
	case Weekly, AcceleratedWeekly:
		return rates.Weekly
	}
	return ""
}

// Label returns the human-readable name of the scheme.
func (s Scheme) Label() string {
	switch s {
	case Monthly:
		return "Monthly"
	case SemiMonthly:
		return "Semi-Monthly"
	case BiWeekly:
		return "Bi-Weekly"
	case AcceleratedBiWeekly:
		return "Accelerated Bi-Weekly"
	case Weekly:
		return "Weekly"
	case AcceleratedWeekly:
		return "Accelerated Weekly"
	}
	return string(s)
}

// LevelPayment computes the fixed payment that amortizes principal to zero
// over amortizationYears at a constant periodic rate. A zero rate falls back
// to straight-line division of the principal.
func LevelPayment(principal, periodicRate float64, amortizationYears, periodsPerYear int) (float64, error) {
	if principal <= 0 {
		return 0, fmt.Errorf("%w: principal must be positive, got %.2f", ErrInvalidInput, principal)
	}
	if amortizationYears <= 0 {
		return 0, fmt.Errorf("%w: amortization period must be positive, got %d years", ErrInvalidInput, amortizationYears)
	}
	if periodsPerYear <= 0 {
		return 0, fmt.Errorf("%w: payments per year must be positive, got %d", ErrInvalidInput, periodsPerYear)
	}

	totalPeriods := amortizationYears * periodsPerYear
	if periodicRate == 0 {
		return principal / float64(totalPeriods), nil
	}
	return principal * periodicRate / (1.0 - math.Pow(1.0+periodicRate, -float64(totalPeriods))), nil
}

// Quote maps each scheme to its level payment amount. Amounts carry full
// precision; rounding happens only at presentation.
type Quote map[Scheme]float64

// QuoteAll solves the payment for the four base frequencies and derives the
// accelerated pair. Accelerated payments are half and a quarter of the
// monthly payment by definition; they are never re-solved against the
// bi-weekly or weekly rate.
func QuoteAll(principal float64, terms rates.LoanTerms, set rates.RateSet) (Quote, error) {
	quote := make(Quote, len(AllSchemes))
	for _, scheme := range []Scheme{Monthly, SemiMonthly, BiWeekly, Weekly} {
		frequency := scheme.Frequency()
		payment, err := LevelPayment(principal, set[frequency], terms.AmortizationYears, frequency.PeriodsPerYear())
		if err != nil {
			return nil, err
		}
		quote[scheme] = payment
	}
	quote[AcceleratedBiWeekly] = quote[Monthly] / 2
	quote[AcceleratedWeekly] = quote[Monthly] / 4
	return quote, nil
}
