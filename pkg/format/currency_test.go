package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Small amount", 5.5, "$5.50"},
		{"Thousands separator", 1234.56, "$1,234.56"},
		{"Millions", 1234567.89, "$1,234,567.89"},
		{"Negative amount", -1234.56, "-$1,234.56"},
		{"Zero", 0, "$0.00"},
		{"Rounding to cents", 1831.174, "$1,831.17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Currency(tt.amount); result != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, result, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Positive", 1234.56, "1,234.56"},
		{"Negative", -1234.56, "-1,234.56"},
		{"No separator needed", 999.99, "999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := NumericCurrency(tt.amount); result != tt.expected {
				t.Errorf("NumericCurrency(%v) = %q, expected %q", tt.amount, result, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"One decimal", 2.04, "2.0%"},
		{"Rounds up", 2.46, "2.5%"},
		{"Negative", -5.0, "-5.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Percent(tt.value); result != tt.expected {
				t.Errorf("Percent(%v) = %q, expected %q", tt.value, result, tt.expected)
			}
		})
	}
}
