package output

import (
	"fmt"

	"github.com/iwvelando/mortgage-plan/internal/cpi"
	"github.com/iwvelando/mortgage-plan/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyCPI outputs a human-readable rendering of the price-index report.
func PrettyCPI(report *cpi.Report) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Average month-over-month change ---\n")
	fmt.Printf("Jurisdiction | Item                                | Change\n")
	fmt.Printf("____________ | ____                                | ______\n")
	for _, change := range report.AverageChanges {
		fmt.Printf("%-12s | %-35s | %s\n", change.Jurisdiction, change.Item, format.Percent(change.AvgMonthlyChangePct))
	}

	fmt.Printf("\n--- Cost-of-living equivalent salaries ---\n")
	fmt.Printf("Jurisdiction | CPI    | Equivalent Salary\n")
	fmt.Printf("____________ | ___    | _________________\n")
	for _, salary := range report.Salaries {
		_, _ = p.Printf("%-12s | %6.1f | $%.2f\n", salary.Jurisdiction, salary.CPI, salary.EquivalentSalary)
	}

	if report.Wages != nil {
		fmt.Printf("\n--- Minimum wages ---\n")
		fmt.Printf("Highest nominal: %s at %s\n",
			report.Wages.NominalMax.Jurisdiction, format.Currency(report.Wages.NominalMax.MinimumWage))
		fmt.Printf("Lowest nominal:  %s at %s\n",
			report.Wages.NominalMin.Jurisdiction, format.Currency(report.Wages.NominalMin.MinimumWage))
		fmt.Printf("Highest real:    %s at index %.2f\n",
			report.Wages.RealMax.Jurisdiction, report.Wages.RealMax.RealWageIndex)
		fmt.Printf("Jurisdiction | Minimum Wage | Real Wage Index\n")
		fmt.Printf("____________ | ____________ | _______________\n")
		for _, row := range report.Wages.Rows {
			fmt.Printf("%-12s | %12s | %.2f\n", row.Jurisdiction, format.Currency(row.MinimumWage), row.RealWageIndex)
		}
	}

	fmt.Printf("\n--- Annual Services inflation ---\n")
	fmt.Printf("Jurisdiction | First  | Final  | Change\n")
	fmt.Printf("____________ | _____  | _____  | ______\n")
	for _, change := range report.ServiceInflation {
		fmt.Printf("%-12s | %6.1f | %6.1f | %s\n",
			change.Jurisdiction, change.FirstMonthCPI, change.FinalMonthCPI, format.Percent(change.AnnualChangePct))
	}
}
