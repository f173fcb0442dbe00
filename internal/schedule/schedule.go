// Package schedule builds period-by-period amortization ledgers and
// orchestrates them across the six payment schemes.
package schedule

import (
	"errors"
	"fmt"

	"github.com/iwvelando/mortgage-plan/pkg/mathutil"
	"github.com/iwvelando/mortgage-plan/pkg/payments"
	"github.com/iwvelando/mortgage-plan/pkg/rates"
	"go.uber.org/zap"
)

// ErrScheduleDiverged indicates a schedule that failed to retire its balance
// within the bounded iteration budget, i.e. a mismatch between the solved
// payment and the periodic rate.
var ErrScheduleDiverged = errors.New("schedule failed to terminate within the amortization horizon")

// Row holds one period of an amortization schedule. Within a schedule the
// beginning balance of each row equals the prior row's ending balance, and
// the final row's ending balance is exactly zero.
type Row struct {
	Period           int
	BeginningBalance float64
	Payment          float64
	PrincipalPaid    float64
	InterestPaid     float64
	EndingBalance    float64
}

// Schedule is the ordered ledger for one payment scheme. It is only appended
// to during construction and never mutated afterward.
type Schedule []Row

// TotalInterest sums the interest paid across the full schedule.
func (s Schedule) TotalInterest() float64 {
	total := 0.0
	for _, row := range s {
		total += row.InterestPaid
	}
	return total
}

// TotalPaid sums all payments across the full schedule.
func (s Schedule) TotalPaid() float64 {
	total := 0.0
	for _, row := range s {
		total += row.Payment
	}
	return total
}

// Build generates the ledger for a single scheme. The loop is bounded at one
// period past the nominal horizon; a balance still outstanding at the bound
// surfaces as ErrScheduleDiverged rather than silently truncating.
func Build(principal, payment, periodicRate float64, periodsPerYear, amortizationYears int) (Schedule, error) {
	if principal <= 0 {
		return nil, fmt.Errorf("%w: principal must be positive, got %.2f", payments.ErrInvalidInput, principal)
	}
	if periodsPerYear <= 0 {
		return nil, fmt.Errorf("%w: payments per year must be positive, got %d", payments.ErrInvalidInput, periodsPerYear)
	}
	if amortizationYears <= 0 {
		return nil, fmt.Errorf("%w: amortization period must be positive, got %d years", payments.ErrInvalidInput, amortizationYears)
	}

	maxPeriods := amortizationYears*periodsPerYear + 1
	ledger := make(Schedule, 0, maxPeriods)
	balance := principal

	for period := 1; period <= maxPeriods && balance > 0; period++ {
		interest := balance * periodicRate
		row := Row{
			Period:           period,
			BeginningBalance: balance,
			InterestPaid:     interest,
		}

		if balance+interest < payment {
			// Final short payment: clear the remaining balance exactly.
			row.Payment = balance + interest
			row.PrincipalPaid = balance
			row.EndingBalance = 0.0
		} else {
			row.Payment = payment
			row.PrincipalPaid = payment - interest
			row.EndingBalance = balance - row.PrincipalPaid
			if mathutil.Round(row.EndingBalance) == 0 {
				// We will get machine error otherwise so just set to 0.
				row.EndingBalance = 0.0
			}
		}

		ledger = append(ledger, row)
		balance = row.EndingBalance
	}

	if balance > 0 {
		return nil, fmt.Errorf("%w: %.2f remains after %d periods", ErrScheduleDiverged, balance, maxPeriods)
	}
	return ledger, nil
}

// GenerateAll derives the periodic rates once, solves the six-scheme payment
// quote, and builds one schedule per scheme. All schedules are computed
// before any output side effect happens; the caller owns the returned map
// and must not mutate the schedules.
func GenerateAll(logger *zap.Logger, principal float64, terms rates.LoanTerms) (map[payments.Scheme]Schedule, payments.Quote, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	set := rates.Derive(terms)
	quote, err := payments.QuoteAll(principal, terms, set)
	if err != nil {
		return nil, nil, err
	}

	schedules := make(map[payments.Scheme]Schedule, len(payments.AllSchemes))
	for _, scheme := range payments.AllSchemes {
		frequency := scheme.Frequency()
		ledger, err := Build(principal, quote[scheme], set[frequency], frequency.PeriodsPerYear(), terms.AmortizationYears)
		if err != nil {
			return nil, nil, fmt.Errorf("scheme %s: %w", scheme, err)
		}
		logger.Debug(fmt.Sprintf("built %d-period schedule for %s with payment %.2f", len(ledger), scheme, quote[scheme]),
			zap.String("op", "schedule.GenerateAll"),
		)
		schedules[scheme] = ledger
	}

	return schedules, quote, nil
}
