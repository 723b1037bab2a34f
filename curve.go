package main

import (
	"fmt"
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// CurvePoint holds every derived value for one gross income on the grid.
type CurvePoint struct {
	GrossIncome   float64
	BracketTax    float64
	GeneralCredit float64
	LabourCredit  float64
	TotalTax      float64
	NetIncome     float64
	EffectiveRate float64
	MarginalRate  float64
}

// EvaluatePoint computes all derived values for a single gross income.
func EvaluatePoint(schedule *Schedule, income float64) CurvePoint {
	return CurvePoint{
		GrossIncome:   income,
		BracketTax:    schedule.BracketTax(income),
		GeneralCredit: schedule.GeneralCredit.CreditFor(income),
		LabourCredit:  schedule.LabourCredit.CreditFor(income),
		TotalTax:      schedule.TotalTax(income),
		NetIncome:     schedule.NetIncome(income),
		EffectiveRate: schedule.EffectiveRate(income),
		MarginalRate:  schedule.MarginalRate(income),
	}
}

// SampleCurve evaluates the schedule over an evenly spaced income grid of
// the given size from 0 to maxIncome inclusive.
//
// Every point is independent, so the grid is split into contiguous chunks
// evaluated in parallel. Each worker writes only its own index range; the
// returned slice is always in grid order regardless of scheduling.
func SampleCurve(schedule *Schedule, maxIncome float64, points int) ([]CurvePoint, error) {
	if err := ValidateIncome(maxIncome); err != nil {
		return nil, fmt.Errorf("max income: %w", err)
	}
	if points < 2 {
		return nil, fmt.Errorf("curve needs at least 2 points, got %d", points)
	}

	step := maxIncome / float64(points-1)
	result := make([]CurvePoint, points)

	workers := runtime.NumCPU()
	if workers > points {
		workers = points
	}
	chunk := (points + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < points; start += chunk {
		start := start
		end := start + chunk
		if end > points {
			end = points
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				result[i] = EvaluatePoint(schedule, float64(i)*step)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// curveSeries extracts one value across all curve points, in grid order.
func curveSeries(points []CurvePoint, value func(CurvePoint) float64) []float64 {
	return lo.Map(points, func(p CurvePoint, _ int) float64 {
		return value(p)
	})
}
