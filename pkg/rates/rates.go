// Package rates converts quoted annual mortgage rates into the periodic
// rates applied at each payment frequency.
package rates

import (
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-plan/pkg/constants"
)

// Frequency identifies a base payment frequency.
type Frequency string

// The four base payment frequencies.
const (
	Monthly     Frequency = "monthly"
	SemiMonthly Frequency = "semi-monthly"
	BiWeekly    Frequency = "bi-weekly"
	Weekly      Frequency = "weekly"
)

// BaseFrequencies lists the frequencies whose payments are independently
// solved, in presentation order.
var BaseFrequencies = []Frequency{Monthly, SemiMonthly, BiWeekly, Weekly}

// PeriodsPerYear returns the number of payments per year for the frequency.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case Monthly:
		return constants.MonthlyPeriods
	case SemiMonthly:
		return constants.SemiMonthlyPeriods
	case BiWeekly:
		return constants.BiWeeklyPeriods
	case Weekly:
		return constants.WeeklyPeriods
	}
	return 0
}

// LoanTerms holds the fixed parameters of a mortgage quote. QuotedRate is a
// decimal fraction (0.055 for 5.5%). TermYears is the contract term; it is
// informational only and does not enter the amortization math.
type LoanTerms struct {
	QuotedRate        float64
	AmortizationYears int
	TermYears         int
}

// NewLoanTerms constructs LoanTerms from a rate quoted as a percentage
// (e.g. 5.5 for 5.5%), rejecting invalid parameters before any computation.
func NewLoanTerms(quotedRatePercent float64, amortizationYears, termYears int) (LoanTerms, error) {
	if quotedRatePercent < 0 {
		return LoanTerms{}, fmt.Errorf("quoted rate must not be negative, got %.2f", quotedRatePercent)
	}
	if amortizationYears <= 0 {
		return LoanTerms{}, fmt.Errorf("amortization period must be positive, got %d years", amortizationYears)
	}
	if termYears <= 0 {
		return LoanTerms{}, fmt.Errorf("term must be positive, got %d years", termYears)
	}
	return LoanTerms{
		QuotedRate:        quotedRatePercent / constants.PercentageMultiplier,
		AmortizationYears: amortizationYears,
		TermYears:         termYears,
	}, nil
}

// PeriodicRate converts a quoted annual rate into the rate applied once per
// payment period. Quoted fixed mortgage rates compound semi-annually, so the
// conversion goes through the effective semi-annual rate rather than dividing
// the nominal rate by the number of payments per year.
func PeriodicRate(nominalAnnualRate float64, periodsPerYear int) float64 {
	semiAnnualRate := nominalAnnualRate / constants.SemiAnnualCompounding
	return math.Pow(1.0+semiAnnualRate, constants.SemiAnnualCompounding/float64(periodsPerYear)) - 1.0
}

// RateSet maps each base frequency to its derived periodic rate.
type RateSet map[Frequency]float64

// Derive computes the periodic rate for every base frequency. The set is
// computed once per quote and treated as immutable afterward.
func Derive(terms LoanTerms) RateSet {
	set := make(RateSet, len(BaseFrequencies))
	for _, frequency := range BaseFrequencies {
		set[frequency] = PeriodicRate(terms.QuotedRate, frequency.PeriodsPerYear())
	}
	return set
}
