package chart

import (
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-plan/internal/schedule"
	"github.com/iwvelando/mortgage-plan/pkg/payments"
	"github.com/iwvelando/mortgage-plan/pkg/rates"
)

func buildSchedules(t *testing.T) map[payments.Scheme]schedule.Schedule {
	t.Helper()
	terms, err := rates.NewLoanTerms(5.5, 25, 5)
	if err != nil {
		t.Fatalf("NewLoanTerms() unexpected error: %v", err)
	}
	schedules, _, err := schedule.GenerateAll(nil, 300000, terms)
	if err != nil {
		t.Fatalf("GenerateAll() unexpected error: %v", err)
	}
	return schedules
}

func TestBalanceDecline(t *testing.T) {
	schedules := buildSchedules(t)

	rendered := BalanceDecline(schedules, 40)
	if rendered == "" {
		t.Fatal("BalanceDecline() returned empty output")
	}

	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	if len(lines) != len(payments.AllSchemes) {
		t.Errorf("chart has %d lines, expected %d", len(lines), len(payments.AllSchemes))
	}
	for _, scheme := range payments.AllSchemes {
		if !strings.Contains(rendered, scheme.Label()) {
			t.Errorf("chart is missing a line for %s", scheme.Label())
		}
	}
	if !strings.Contains(rendered, "300 periods") {
		t.Error("chart is missing the monthly period count")
	}
}

func TestBalanceDeclineDefaultWidth(t *testing.T) {
	schedules := buildSchedules(t)
	if BalanceDecline(schedules, 0) == "" {
		t.Error("BalanceDecline() with zero width should fall back to the default width")
	}
}

func TestBalanceDeclineEmpty(t *testing.T) {
	if got := BalanceDecline(map[payments.Scheme]schedule.Schedule{}, 40); got != "" {
		t.Errorf("BalanceDecline() of no schedules = %q, expected empty", got)
	}
}

func TestDownsample(t *testing.T) {
	values := []float64{4, 2, 8, 6, 10, 0}

	sampled := downsample(values, 3)
	if len(sampled) != 3 {
		t.Fatalf("downsample returned %d values, expected 3", len(sampled))
	}
	expected := []float64{3, 7, 5}
	for i := range expected {
		if sampled[i] != expected[i] {
			t.Errorf("sampled[%d] = %v, expected %v", i, sampled[i], expected[i])
		}
	}

	short := downsample(values, 10)
	if len(short) != len(values) {
		t.Errorf("downsample should pass through series shorter than the width")
	}
}
