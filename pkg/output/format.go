// Package output provides utilities for formatting and displaying payment
// quotes, amortization schedules, and price-index reports.
package output

import (
	"fmt"

	"github.com/iwvelando/mortgage-plan/internal/schedule"
	"github.com/iwvelando/mortgage-plan/pkg/payments"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable summary
// of the quote and the six schedules.
func PrettyFormat(principal float64, quote payments.Quote, schedules map[payments.Scheme]schedule.Schedule) {
	p := message.NewPrinter(language.English)
	_, _ = p.Printf("--- Payment schemes for principal $%.2f ---\n", principal)
	fmt.Printf("Scheme                | Payment      | Periods | Total Interest | Total Paid\n")
	fmt.Printf("______                | _______      | _______ | ______________ | __________\n")
	for _, scheme := range payments.AllSchemes {
		ledger := schedules[scheme]
		_, _ = p.Printf("%-21s | $%10.2f | %7d | $%13.2f | $%.2f\n",
			scheme.Label(), quote[scheme], len(ledger), ledger.TotalInterest(), ledger.TotalPaid())
	}
}

// CsvFormat outputs every schedule row in comma-separated value format with
// a leading scheme column. Amounts are rounded to cents here, at the point
// of presentation.
func CsvFormat(schedules map[payments.Scheme]schedule.Schedule) {
	fmt.Printf("\"scheme\",\"period\",\"beginning_balance\",\"payment\",\"principal_paid\",\"interest_paid\",\"ending_balance\"\n")
	for _, scheme := range payments.AllSchemes {
		for _, row := range schedules[scheme] {
			fmt.Printf("\"%s\",\"%d\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\"\n",
				scheme, row.Period, row.BeginningBalance, row.Payment,
				row.PrincipalPaid, row.InterestPaid, row.EndingBalance)
		}
	}
}
