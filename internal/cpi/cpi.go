// Package cpi performs descriptive statistical analysis of regional consumer
// price index series against minimum wage data.
package cpi

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-plan/pkg/constants"
	"github.com/iwvelando/mortgage-plan/pkg/mathutil"
	"go.uber.org/zap"
)

// DefaultItems are the index items aggregated by AverageMonthlyChange.
var DefaultItems = []string{"Food", "Shelter", "All-items excluding food and energy"}

// allItems is the headline index used for salary and wage comparisons.
const allItems = "All-items"

// Observation is one jurisdiction/item/month index reading.
type Observation struct {
	Jurisdiction string
	Item         string
	Month        string
	CPI          float64
}

// Series holds long-form CPI observations. Months preserves the column order
// of the source files; Jurisdictions preserves load order with the national
// series first.
type Series struct {
	Observations  []Observation
	Months        []string
	Jurisdictions []string

	index map[string]float64
}

func key(jurisdiction, item, month string) string {
	return jurisdiction + "\x00" + item + "\x00" + month
}

// Value looks up one reading.
func (s *Series) Value(jurisdiction, item, month string) (float64, bool) {
	v, ok := s.index[key(jurisdiction, item, month)]
	return v, ok
}

// LoadSeries reads every wide-format CPI file matching the glob pattern into
// one long-form series. Each file carries one jurisdiction, named by the
// filename prefix up to the first dot; the first column is the item label and
// the remaining columns are months. The national ("Canada") file is processed
// first so its month ordering anchors the series.
func LoadSeries(logger *zap.Logger, pattern string) (*Series, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad CPI file pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no CPI files found at %q", pattern)
	}

	sort.Slice(paths, func(i, j int) bool {
		iBase, jBase := filepath.Base(paths[i]), filepath.Base(paths[j])
		iCanada := strings.Contains(iBase, "Canada")
		jCanada := strings.Contains(jBase, "Canada")
		if iCanada != jCanada {
			return iCanada
		}
		return iBase < jBase
	})

	series := &Series{index: make(map[string]float64)}
	for _, path := range paths {
		jurisdiction := strings.SplitN(filepath.Base(path), ".", 2)[0]
		if err := series.loadFile(path, jurisdiction); err != nil {
			return nil, err
		}
		series.Jurisdictions = append(series.Jurisdictions, jurisdiction)
		logger.Debug(fmt.Sprintf("loaded CPI series for %s from %s", jurisdiction, path),
			zap.String("op", "cpi.LoadSeries"),
		)
	}

	return series, nil
}

func (s *Series) loadFile(path, jurisdiction string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open CPI file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse CPI file %s: %w", path, err)
	}
	if len(records) < 2 || len(records[0]) < 2 {
		return fmt.Errorf("CPI file %s does not have an item column and month columns", path)
	}

	months := records[0][1:]
	if s.Months == nil {
		s.Months = months
	}

	for _, record := range records[1:] {
		item := strings.TrimSpace(record[0])
		for i, raw := range record[1:] {
			if i >= len(months) {
				break
			}
			value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				continue
			}
			obs := Observation{
				Jurisdiction: jurisdiction,
				Item:         item,
				Month:        months[i],
				CPI:          value,
			}
			s.Observations = append(s.Observations, obs)
			s.index[key(jurisdiction, item, months[i])] = value
		}
	}

	return nil
}

// ChangeSummary is the average month-over-month percent change for one
// jurisdiction and item.
type ChangeSummary struct {
	Jurisdiction        string
	Item                string
	AvgMonthlyChangePct float64
}

// AverageMonthlyChange computes the mean month-over-month percent change of
// each requested item per jurisdiction, ordered by jurisdiction then item.
func (s *Series) AverageMonthlyChange(items []string) []ChangeSummary {
	var summaries []ChangeSummary
	for _, jurisdiction := range s.Jurisdictions {
		for _, item := range items {
			values := s.monthValues(jurisdiction, item)
			if len(values) < 2 {
				continue
			}
			sum := 0.0
			for i := 1; i < len(values); i++ {
				sum += mathutil.PercentChange(values[i-1], values[i])
			}
			summaries = append(summaries, ChangeSummary{
				Jurisdiction:        jurisdiction,
				Item:                item,
				AvgMonthlyChangePct: sum / float64(len(values)-1),
			})
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Jurisdiction != summaries[j].Jurisdiction {
			return summaries[i].Jurisdiction < summaries[j].Jurisdiction
		}
		return summaries[i].Item < summaries[j].Item
	})
	return summaries
}

func (s *Series) monthValues(jurisdiction, item string) []float64 {
	values := make([]float64, 0, len(s.Months))
	for _, month := range s.Months {
		if v, ok := s.Value(jurisdiction, item, month); ok {
			values = append(values, v)
		}
	}
	return values
}

// Salary is a jurisdiction's cost-of-living-equivalent salary relative to
// the base jurisdiction.
type Salary struct {
	Jurisdiction     string
	CPI              float64
	EquivalentSalary float64
}

// EquivalentSalaries scales a base salary by the ratio of each jurisdiction's
// final-month All-items CPI to the base jurisdiction's.
func (s *Series) EquivalentSalaries(baseJurisdiction string, baseSalary float64) ([]Salary, error) {
	if len(s.Months) == 0 {
		return nil, fmt.Errorf("CPI series has no months")
	}
	finalMonth := s.Months[len(s.Months)-1]

	baseCPI, ok := s.Value(baseJurisdiction, allItems, finalMonth)
	if !ok || baseCPI == 0 {
		return nil, fmt.Errorf("base jurisdiction %q has no %s reading for %s", baseJurisdiction, allItems, finalMonth)
	}

	var salaries []Salary
	for _, jurisdiction := range s.Jurisdictions {
		cpi, ok := s.Value(jurisdiction, allItems, finalMonth)
		if !ok {
			continue
		}
		salaries = append(salaries, Salary{
			Jurisdiction:     jurisdiction,
			CPI:              cpi,
			EquivalentSalary: cpi / baseCPI * baseSalary,
		})
	}
	return salaries, nil
}

// WageRow merges one jurisdiction's nominal minimum wage with its final-month
// All-items CPI. RealWageIndex is the wage deflated by the index.
type WageRow struct {
	Jurisdiction  string
	MinimumWage   float64
	CPI           float64
	RealWageIndex float64
}

// WageAnalysis reports nominal extremes and the highest real minimum wage.
type WageAnalysis struct {
	Rows       []WageRow
	NominalMax WageRow
	NominalMin WageRow
	RealMax    WageRow
}

// MinimumWageAnalysis reads a Province,Minimum Wage CSV and compares nominal
// wages against real wages deflated by each jurisdiction's final-month
// All-items CPI.
func (s *Series) MinimumWageAnalysis(wagesPath string) (*WageAnalysis, error) {
	f, err := os.Open(wagesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wages file %s: %w", wagesPath, err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse wages file %s: %w", wagesPath, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("wages file %s has no data rows", wagesPath)
	}
	if len(s.Months) == 0 {
		return nil, fmt.Errorf("CPI series has no months")
	}
	finalMonth := s.Months[len(s.Months)-1]

	analysis := &WageAnalysis{}
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		jurisdiction := strings.TrimSpace(record[0])
		wage, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			continue
		}
		cpi, ok := s.Value(jurisdiction, allItems, finalMonth)
		if !ok || cpi == 0 {
			continue
		}
		analysis.Rows = append(analysis.Rows, WageRow{
			Jurisdiction:  jurisdiction,
			MinimumWage:   wage,
			CPI:           cpi,
			RealWageIndex: wage / cpi * constants.PercentageMultiplier,
		})
	}
	if len(analysis.Rows) == 0 {
		return nil, fmt.Errorf("no wage rows in %s matched a CPI jurisdiction", wagesPath)
	}

	analysis.NominalMax = analysis.Rows[0]
	analysis.NominalMin = analysis.Rows[0]
	analysis.RealMax = analysis.Rows[0]
	for _, row := range analysis.Rows[1:] {
		if row.MinimumWage > analysis.NominalMax.MinimumWage {
			analysis.NominalMax = row
		}
		if row.MinimumWage < analysis.NominalMin.MinimumWage {
			analysis.NominalMin = row
		}
		if row.RealWageIndex > analysis.RealMax.RealWageIndex {
			analysis.RealMax = row
		}
	}

	return analysis, nil
}

// AnnualChange is one jurisdiction's first-to-last-month percent change for
// a single item.
type AnnualChange struct {
	Jurisdiction    string
	FirstMonthCPI   float64
	FinalMonthCPI   float64
	AnnualChangePct float64
}

// AnnualServiceInflation computes the percentage change in the Services index
// from the first to the final month of the series per jurisdiction.
func (s *Series) AnnualServiceInflation() []AnnualChange {
	if len(s.Months) < 2 {
		return nil
	}
	firstMonth := s.Months[0]
	finalMonth := s.Months[len(s.Months)-1]

	var changes []AnnualChange
	for _, jurisdiction := range s.Jurisdictions {
		first, okFirst := s.Value(jurisdiction, "Services", firstMonth)
		final, okFinal := s.Value(jurisdiction, "Services", finalMonth)
		if !okFirst || !okFinal {
			continue
		}
		changes = append(changes, AnnualChange{
			Jurisdiction:    jurisdiction,
			FirstMonthCPI:   first,
			FinalMonthCPI:   final,
			AnnualChangePct: mathutil.PercentChange(first, final),
		})
	}
	return changes
}

// Report bundles the full statistics pass.
type Report struct {
	AverageChanges   []ChangeSummary
	Salaries         []Salary
	Wages            *WageAnalysis
	ServiceInflation []AnnualChange
}

// Analyze runs the complete statistics pipeline. The wage analysis is
// skipped when wagesPath is empty.
func Analyze(logger *zap.Logger, pattern, wagesPath, baseJurisdiction string, baseSalary float64) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	series, err := LoadSeries(logger, pattern)
	if err != nil {
		return nil, err
	}

	report := &Report{
		AverageChanges:   series.AverageMonthlyChange(DefaultItems),
		ServiceInflation: series.AnnualServiceInflation(),
	}

	report.Salaries, err = series.EquivalentSalaries(baseJurisdiction, baseSalary)
	if err != nil {
		return nil, err
	}

	if wagesPath != "" {
		report.Wages, err = series.MinimumWageAnalysis(wagesPath)
		if err != nil {
			return nil, err
		}
	}

	return report, nil
}
