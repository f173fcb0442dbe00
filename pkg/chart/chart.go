// Package chart renders terminal charts of schedule data.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iwvelando/mortgage-plan/internal/schedule"
	"github.com/iwvelando/mortgage-plan/pkg/constants"
	"github.com/iwvelando/mortgage-plan/pkg/payments"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var schemeColors = map[payments.Scheme]lipgloss.Color{
	payments.Monthly:             lipgloss.Color("#4385BE"),
	payments.SemiMonthly:         lipgloss.Color("#8B7EC8"),
	payments.BiWeekly:            lipgloss.Color("#3AA99F"),
	payments.AcceleratedBiWeekly: lipgloss.Color("#879A39"),
	payments.Weekly:              lipgloss.Color("#D0A215"),
	payments.AcceleratedWeekly:   lipgloss.Color("#DA702C"),
}

// BalanceDecline renders one sparkline per scheme of the ending balance over
// the schedule, downsampled to width columns. All series share the same
// vertical scale so the accelerated schemes visibly terminate early.
func BalanceDecline(schedules map[payments.Scheme]schedule.Schedule, width int) string {
	if width <= 0 {
		width = constants.DefaultChartWidth
	}

	// Shared peak across schemes; the first beginning balance is the principal.
	peak := 0.0
	longest := 0
	for _, ledger := range schedules {
		if len(ledger) > 0 && ledger[0].BeginningBalance > peak {
			peak = ledger[0].BeginningBalance
		}
		if len(ledger) > longest {
			longest = len(ledger)
		}
	}
	if peak == 0 {
		return ""
	}

	var b strings.Builder
	for _, scheme := range payments.AllSchemes {
		ledger := schedules[scheme]
		if len(ledger) == 0 {
			continue
		}
		values := downsample(endingBalances(ledger, longest), width)
		b.WriteString(fmt.Sprintf("%-22s %s  %d periods\n",
			scheme.Label(), sparkline(values, peak, schemeColors[scheme]), len(ledger)))
	}
	return b.String()
}

// endingBalances pads every series out to the longest schedule so the x axis
// lines up across schemes; retired loans sit at zero.
func endingBalances(ledger schedule.Schedule, length int) []float64 {
	values := make([]float64, length)
	for i, row := range ledger {
		values[i] = row.EndingBalance
	}
	return values
}

func downsample(values []float64, width int) []float64 {
	if len(values) <= width {
		return values
	}
	sampled := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		sum := 0.0
		for _, v := range values[start:end] {
			sum += v
		}
		sampled[i] = sum / float64(end-start)
	}
	return sampled
}

func sparkline(values []float64, peak float64, color lipgloss.Color) string {
	style := lipgloss.NewStyle().Foreground(color)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}
