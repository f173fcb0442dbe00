// Package export writes computed amortization schedules to an xlsx workbook.
package export

import (
	"fmt"

	"github.com/iwvelando/mortgage-plan/internal/schedule"
	"github.com/iwvelando/mortgage-plan/pkg/mathutil"
	"github.com/iwvelando/mortgage-plan/pkg/payments"
	"github.com/xuri/excelize/v2"
)

// chartSheet is the sheet carrying the balance decline chart.
const chartSheet = "Balance Decline"

var header = []interface{}{"Period", "Beginning Balance", "Payment", "Principal Paid", "Interest Paid", "Ending Balance"}

// Workbook writes one sheet per scheme plus a line chart of ending balance
// versus period across all six schemes. All schedules are already computed;
// this is a single pass with no recomputation, and a write failure leaves the
// in-memory schedules untouched.
func Workbook(path string, schedules map[payments.Scheme]schedule.Schedule) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	for _, scheme := range payments.AllSchemes {
		if err := writeSheet(f, scheme, schedules[scheme]); err != nil {
			return err
		}
	}
	if err := addBalanceChart(f, schedules); err != nil {
		return err
	}

	// Drop the default sheet so the workbook opens on the first scheme.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, scheme payments.Scheme, ledger schedule.Schedule) error {
	name := scheme.Label()
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", name, err)
	}
	for i, row := range ledger {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		// Rounding to cents happens here, at presentation.
		values := []interface{}{
			row.Period,
			mathutil.Round(row.BeginningBalance),
			mathutil.Round(row.Payment),
			mathutil.Round(row.PrincipalPaid),
			mathutil.Round(row.InterestPaid),
			mathutil.Round(row.EndingBalance),
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d for %s: %w", i+2, name, err)
		}
	}
	return nil
}

func addBalanceChart(f *excelize.File, schedules map[payments.Scheme]schedule.Schedule) error {
	if _, err := f.NewSheet(chartSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", chartSheet, err)
	}

	series := make([]excelize.ChartSeries, 0, len(payments.AllSchemes))
	for _, scheme := range payments.AllSchemes {
		lastRow := len(schedules[scheme]) + 1
		series = append(series, excelize.ChartSeries{
			Name:       scheme.Label(),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", scheme.Label(), lastRow),
			Values:     fmt.Sprintf("'%s'!$F$2:$F$%d", scheme.Label(), lastRow),
		})
	}

	err := f.AddChart(chartSheet, "B2", &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: "Loan Balance Decline Over Time by Payment Scheme"}},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Payment Periods"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Loan Balance ($)"}}},
		Dimension: excelize.ChartDimension{
			Width:  720,
			Height: 420,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to add balance chart: %w", err)
	}
	return nil
}
