package main

import (
	"errors"
	"math"
	"testing"
)

func TestSampleCurve_GridShape(t *testing.T) {
	s := testSchedule()
	points, err := SampleCurve(s, 150000, 1501)
	if err != nil {
		t.Fatalf("SampleCurve failed: %v", err)
	}

	if len(points) != 1501 {
		t.Fatalf("Expected 1501 points, got %d", len(points))
	}
	if points[0].GrossIncome != 0 {
		t.Errorf("First point should be at income 0, got %.2f", points[0].GrossIncome)
	}
	if points[len(points)-1].GrossIncome != 150000 {
		t.Errorf("Last point should be at income 150000, got %.2f", points[len(points)-1].GrossIncome)
	}

	// Evenly spaced, strictly increasing: order must match the grid even
	// though chunks are evaluated in parallel.
	step := 150000.0 / 1500.0
	for i, p := range points {
		expected := float64(i) * step
		if math.Abs(p.GrossIncome-expected) > 1e-9 {
			t.Fatalf("Point %d out of order: income %.6f, expected %.6f", i, p.GrossIncome, expected)
		}
	}
}

func TestSampleCurve_MatchesDirectEvaluation(t *testing.T) {
	s := testSchedule()
	points, err := SampleCurve(s, 150000, 1501)
	if err != nil {
		t.Fatalf("SampleCurve failed: %v", err)
	}

	for _, i := range []int{0, 100, 500, 731, 1153, 1500} {
		p := points[i]
		income := p.GrossIncome
		assertAmountEquals(t, s.BracketTax(income), p.BracketTax, "bracket tax")
		assertAmountEquals(t, s.GeneralCredit.CreditFor(income), p.GeneralCredit, "general credit")
		assertAmountEquals(t, s.LabourCredit.CreditFor(income), p.LabourCredit, "labour credit")
		assertAmountEquals(t, s.TotalTax(income), p.TotalTax, "total tax")
		assertAmountEquals(t, s.NetIncome(income), p.NetIncome, "net income")
		assertAmountEquals(t, s.EffectiveRate(income), p.EffectiveRate, "effective rate")
		assertAmountEquals(t, s.MarginalRate(income), p.MarginalRate, "marginal rate")
	}
}

func TestSampleCurve_Deterministic(t *testing.T) {
	// Pure evaluation over a fixed grid: two runs are identical point for
	// point regardless of worker scheduling.
	s := testSchedule()
	first, err := SampleCurve(s, 150000, 1501)
	if err != nil {
		t.Fatalf("SampleCurve failed: %v", err)
	}
	second, err := SampleCurve(s, 150000, 1501)
	if err != nil {
		t.Fatalf("SampleCurve failed: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Point %d differs between runs: %+v != %+v", i, first[i], second[i])
		}
	}
}

func TestSampleCurve_SmallGrids(t *testing.T) {
	s := testSchedule()

	// Fewer points than workers still fills the whole grid.
	points, err := SampleCurve(s, 100, 2)
	if err != nil {
		t.Fatalf("SampleCurve failed: %v", err)
	}
	if len(points) != 2 || points[0].GrossIncome != 0 || points[1].GrossIncome != 100 {
		t.Errorf("Two-point grid wrong: %+v", points)
	}
}

func TestSampleCurve_RejectsBadInput(t *testing.T) {
	s := testSchedule()

	if _, err := SampleCurve(s, -1, 100); !errors.Is(err, ErrInvalidIncome) {
		t.Errorf("Negative max income should fail with ErrInvalidIncome, got %v", err)
	}
	if _, err := SampleCurve(s, math.NaN(), 100); !errors.Is(err, ErrInvalidIncome) {
		t.Errorf("NaN max income should fail with ErrInvalidIncome, got %v", err)
	}
	if _, err := SampleCurve(s, 150000, 1); err == nil {
		t.Error("Single-point grid should be rejected")
	}
	if _, err := SampleCurve(s, 150000, 0); err == nil {
		t.Error("Empty grid should be rejected")
	}
}

func TestCurveSeries_PreservesOrder(t *testing.T) {
	s := testSchedule()
	points, err := SampleCurve(s, 150000, 151)
	if err != nil {
		t.Fatalf("SampleCurve failed: %v", err)
	}

	gross := curveSeries(points, func(p CurvePoint) float64 { return p.GrossIncome })
	if len(gross) != len(points) {
		t.Fatalf("Series length %d, expected %d", len(gross), len(points))
	}
	for i := 1; i < len(gross); i++ {
		if gross[i] <= gross[i-1] {
			t.Fatalf("Series out of order at %d: %.2f <= %.2f", i, gross[i], gross[i-1])
		}
	}
}
