package main

import (
	"testing"
)

func TestFormatEuro(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "€ 0.00"},
		{1, "€ 1.00"},
		{999.5, "€ 999.50"},
		{1000, "€ 1,000.00"},
		{10000, "€ 10,000.00"},
		{73031, "€ 73,031.00"},
		{1234567.891, "€ 1,234,567.89"},
		{-0.0515, "€ -0.05"},
	}

	for _, tc := range tests {
		if got := FormatEuro(tc.amount); got != tc.expected {
			t.Errorf("FormatEuro(%v) = %q, expected %q", tc.amount, got, tc.expected)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		rate     float64
		expected string
	}{
		{0, "0.00%"},
		{0.3693, "36.93%"},
		{0.4950, "49.50%"},
		{0.06095, "6.10%"},
		{1, "100.00%"},
	}

	for _, tc := range tests {
		if got := FormatPercent(tc.rate); got != tc.expected {
			t.Errorf("FormatPercent(%v) = %q, expected %q", tc.rate, got, tc.expected)
		}
	}
}

func TestFormatAxisEuro(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "€ 0"},
		{500, "€ 500"},
		{25000, "€ 25k"},
		{150000, "€ 150k"},
	}

	for _, tc := range tests {
		if got := formatAxisEuro(tc.amount); got != tc.expected {
			t.Errorf("formatAxisEuro(%v) = %q, expected %q", tc.amount, got, tc.expected)
		}
	}
}

func TestBreakdownRows(t *testing.T) {
	s := testSchedule()
	rows := breakdownRows(s, 150000)

	if len(rows) != 8 {
		t.Fatalf("Expected 8 rows, got %d", len(rows))
	}

	// Both credits are exhausted at €150,000, so the total tax is the
	// bracket tax and the marginal rate is the top bracket rate.
	expected := [][2]string{
		{"Gross income", "€ 150,000.00"},
		{"Bracket tax", "€ 65,070.00"},
		{"General tax credit", "€ 0.00"},
		{"Labour tax credit", "€ 0.00"},
		{"Total tax", "€ 65,070.00"},
		{"Net income", "€ 84,930.00"},
		{"Effective rate", "43.38%"},
		{"Marginal rate", "49.50%"},
	}
	for i, want := range expected {
		if rows[i] != want {
			t.Errorf("Row %d = %v, expected %v", i, rows[i], want)
		}
	}
}
