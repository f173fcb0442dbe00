package cpi

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeSeriesFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"Canada.CPI.1810000401.csv": `Item,24-Jan,24-Feb,24-Mar
All-items,158.3,159.1,159.8
Food,182.1,183.0,183.5
Shelter,176.4,177.2,178.0
All-items excluding food and energy,150.2,150.9,151.3
Services,165.7,166.2,167.4
`,
		"ON.CPI.1810000401.csv": `Item,24-Jan,24-Feb,24-Mar
All-items,160.0,161.6,163.2
Food,100.0,102.0,104.04
Shelter,180.3,181.0,182.1
All-items excluding food and energy,152.8,153.3,153.9
Services,150.0,151.5,153.0
`,
		"AB.CPI.1810000401.csv": `Item,24-Jan,24-Feb,24-Mar
All-items,170.0,171.0,179.52
Food,178.9,179.5,180.2
Shelter,172.2,172.9,173.3
All-items excluding food and energy,149.0,149.5,150.1
Services,160.0,160.8,164.8
`,
	}
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func writeWagesFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "MinimumWages.csv")
	contents := `Province,Minimum Wage
ON,17.20
AB,15.00
Canada,17.30
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write wages file: %v", err)
	}
	return path
}

func TestLoadSeries(t *testing.T) {
	dir := writeSeriesFiles(t)

	series, err := LoadSeries(zap.NewNop(), filepath.Join(dir, "*.CPI.*.csv"))
	if err != nil {
		t.Fatalf("LoadSeries() unexpected error: %v", err)
	}

	if len(series.Jurisdictions) != 3 {
		t.Fatalf("loaded %d jurisdictions, expected 3", len(series.Jurisdictions))
	}
	// The national series anchors the ordering.
	if series.Jurisdictions[0] != "Canada" {
		t.Errorf("first jurisdiction = %s, expected Canada", series.Jurisdictions[0])
	}
	if len(series.Months) != 3 || series.Months[0] != "24-Jan" || series.Months[2] != "24-Mar" {
		t.Errorf("months = %v, expected [24-Jan 24-Feb 24-Mar]", series.Months)
	}

	v, ok := series.Value("ON", "Food", "24-Feb")
	if !ok || v != 102.0 {
		t.Errorf("Value(ON, Food, 24-Feb) = %v/%v, expected 102", v, ok)
	}
}

func TestLoadSeriesNoFiles(t *testing.T) {
	_, err := LoadSeries(nil, filepath.Join(t.TempDir(), "*.csv"))
	if err == nil {
		t.Error("LoadSeries() expected error when no files match")
	}
}

func TestAverageMonthlyChange(t *testing.T) {
	dir := writeSeriesFiles(t)
	series, err := LoadSeries(nil, filepath.Join(dir, "*.CPI.*.csv"))
	if err != nil {
		t.Fatalf("LoadSeries() unexpected error: %v", err)
	}

	summaries := series.AverageMonthlyChange(DefaultItems)
	if len(summaries) != 9 {
		t.Fatalf("got %d summaries, expected 9 (3 jurisdictions x 3 items)", len(summaries))
	}

	// ON Food rises exactly 2% each month.
	found := false
	for _, summary := range summaries {
		if summary.Jurisdiction == "ON" && summary.Item == "Food" {
			found = true
			if math.Abs(summary.AvgMonthlyChangePct-2.0) > 1e-9 {
				t.Errorf("ON Food average change = %v, expected 2.0", summary.AvgMonthlyChangePct)
			}
		}
	}
	if !found {
		t.Error("missing summary for ON Food")
	}

	// Output ordering is by jurisdiction then item.
	for i := 1; i < len(summaries); i++ {
		prev, cur := summaries[i-1], summaries[i]
		if prev.Jurisdiction > cur.Jurisdiction ||
			(prev.Jurisdiction == cur.Jurisdiction && prev.Item > cur.Item) {
			t.Errorf("summaries out of order at %d: %v then %v", i, prev, cur)
		}
	}
}

func TestEquivalentSalaries(t *testing.T) {
	dir := writeSeriesFiles(t)
	series, err := LoadSeries(nil, filepath.Join(dir, "*.CPI.*.csv"))
	if err != nil {
		t.Fatalf("LoadSeries() unexpected error: %v", err)
	}

	salaries, err := series.EquivalentSalaries("ON", 100000)
	if err != nil {
		t.Fatalf("EquivalentSalaries() unexpected error: %v", err)
	}
	if len(salaries) != 3 {
		t.Fatalf("got %d salaries, expected 3", len(salaries))
	}

	for _, salary := range salaries {
		switch salary.Jurisdiction {
		case "ON":
			if math.Abs(salary.EquivalentSalary-100000) > 1e-6 {
				t.Errorf("ON equivalent salary = %v, expected the base 100000", salary.EquivalentSalary)
			}
		case "AB":
			// 179.52 / 163.2 * 100000
			if math.Abs(salary.EquivalentSalary-110000) > 1e-6 {
				t.Errorf("AB equivalent salary = %v, expected 110000", salary.EquivalentSalary)
			}
		}
	}
}

func TestEquivalentSalariesMissingBase(t *testing.T) {
	dir := writeSeriesFiles(t)
	series, err := LoadSeries(nil, filepath.Join(dir, "*.CPI.*.csv"))
	if err != nil {
		t.Fatalf("LoadSeries() unexpected error: %v", err)
	}

	if _, err := series.EquivalentSalaries("XX", 100000); err == nil {
		t.Error("EquivalentSalaries() expected error for unknown base jurisdiction")
	}
}

func TestMinimumWageAnalysis(t *testing.T) {
	dir := writeSeriesFiles(t)
	series, err := LoadSeries(nil, filepath.Join(dir, "*.CPI.*.csv"))
	if err != nil {
		t.Fatalf("LoadSeries() unexpected error: %v", err)
	}
	wagesPath := writeWagesFile(t, dir)

	analysis, err := series.MinimumWageAnalysis(wagesPath)
	if err != nil {
		t.Fatalf("MinimumWageAnalysis() unexpected error: %v", err)
	}

	if analysis.NominalMax.Jurisdiction != "Canada" {
		t.Errorf("nominal max = %s, expected Canada at 17.30", analysis.NominalMax.Jurisdiction)
	}
	if analysis.NominalMin.Jurisdiction != "AB" {
		t.Errorf("nominal min = %s, expected AB at 15.00", analysis.NominalMin.Jurisdiction)
	}

	// Real wage indexes: ON 17.20/163.2, AB 15.00/179.52, Canada 17.30/159.8
	// (x100); Canada leads.
	if analysis.RealMax.Jurisdiction != "Canada" {
		t.Errorf("real max = %s, expected Canada", analysis.RealMax.Jurisdiction)
	}
	for _, row := range analysis.Rows {
		if row.Jurisdiction == "ON" {
			expected := 17.20 / 163.2 * 100
			if math.Abs(row.RealWageIndex-expected) > 1e-9 {
				t.Errorf("ON real wage index = %v, expected %v", row.RealWageIndex, expected)
			}
		}
	}
}

func TestAnnualServiceInflation(t *testing.T) {
	dir := writeSeriesFiles(t)
	series, err := LoadSeries(nil, filepath.Join(dir, "*.CPI.*.csv"))
	if err != nil {
		t.Fatalf("LoadSeries() unexpected error: %v", err)
	}

	changes := series.AnnualServiceInflation()
	if len(changes) != 3 {
		t.Fatalf("got %d changes, expected 3", len(changes))
	}
	for _, change := range changes {
		switch change.Jurisdiction {
		case "ON":
			// 150.0 -> 153.0
			if math.Abs(change.AnnualChangePct-2.0) > 1e-9 {
				t.Errorf("ON Services inflation = %v, expected 2.0", change.AnnualChangePct)
			}
		case "AB":
			// 160.0 -> 164.8
			if math.Abs(change.AnnualChangePct-3.0) > 1e-9 {
				t.Errorf("AB Services inflation = %v, expected 3.0", change.AnnualChangePct)
			}
		}
	}
}

func TestAnalyze(t *testing.T) {
	dir := writeSeriesFiles(t)
	wagesPath := writeWagesFile(t, dir)

	report, err := Analyze(zap.NewNop(), filepath.Join(dir, "*.CPI.*.csv"), wagesPath, "ON", 100000)
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	if len(report.AverageChanges) == 0 {
		t.Error("report has no average changes")
	}
	if len(report.Salaries) != 3 {
		t.Errorf("report has %d salaries, expected 3", len(report.Salaries))
	}
	if report.Wages == nil {
		t.Error("report is missing the wage analysis")
	}
	if len(report.ServiceInflation) != 3 {
		t.Errorf("report has %d service inflation rows, expected 3", len(report.ServiceInflation))
	}
}

func TestAnalyzeSkipsWagesWhenUnset(t *testing.T) {
	dir := writeSeriesFiles(t)

	report, err := Analyze(nil, filepath.Join(dir, "*.CPI.*.csv"), "", "ON", 100000)
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}
	if report.Wages != nil {
		t.Error("wage analysis should be skipped when no wages file is configured")
	}
}
