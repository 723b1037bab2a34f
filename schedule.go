package main

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidIncome is returned by ValidateIncome for incomes outside the
// evaluator's precondition (negative, NaN or infinite).
var ErrInvalidIncome = errors.New("income must be a non-negative finite amount")

// ValidateIncome checks the evaluator precondition. Callers that accept
// income from the outside (CLI flags, config files) must call this before
// evaluating; the Schedule methods themselves assume a valid income and
// produce unspecified results otherwise.
func ValidateIncome(income float64) error {
	if income < 0 || math.IsNaN(income) || math.IsInf(income, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidIncome, income)
	}
	return nil
}

// BracketSchedule is the box 1 bracket schedule: income up to Threshold is
// taxed at LowRate, the remainder at HighRate.
type BracketSchedule struct {
	Threshold float64 `yaml:"threshold" json:"threshold"`
	LowRate   float64 `yaml:"low_rate" json:"low_rate"`
	HighRate  float64 `yaml:"high_rate" json:"high_rate"`
}

// TaxOn returns the bracket tax for a gross income. Continuous and
// piecewise-linear with a single slope change at Threshold.
func (b BracketSchedule) TaxOn(income float64) float64 {
	lowAmount := math.Min(income, b.Threshold)
	highAmount := math.Max(income-b.Threshold, 0)

	return lowAmount*b.LowRate + highAmount*b.HighRate
}

// GeneralCreditSchedule is the algemene heffingskorting schedule: a flat
// Maximum below PhaseOutStart, phasing out linearly until PhaseOutEnd.
type GeneralCreditSchedule struct {
	PhaseOutStart float64 `yaml:"phase_out_start" json:"phase_out_start"`
	PhaseOutEnd   float64 `yaml:"phase_out_end" json:"phase_out_end"`
	Maximum       float64 `yaml:"maximum" json:"maximum"`
	PhaseOutRate  float64 `yaml:"phase_out_rate" json:"phase_out_rate"`
}

// CreditFor returns the general tax credit for a gross income.
//
// The phase-out branch measures income from (PhaseOutStart - 1): the
// published schedule defines brackets on whole-euro boundaries with an
// inclusive lower bound, and the resulting one-rate-unit discontinuity at
// PhaseOutStart is part of the schedule. The credit also dips a fraction
// below zero just under PhaseOutEnd for the same reason. Neither is
// smoothed or clamped here.
func (g GeneralCreditSchedule) CreditFor(income float64) float64 {
	switch {
	case income < g.PhaseOutStart:
		return g.Maximum
	case income < g.PhaseOutEnd:
		return g.Maximum - g.PhaseOutRate*(income-(g.PhaseOutStart-1))
	default:
		return 0
	}
}

// LabourCreditSchedule is the arbeidskorting schedule: two phase-in bands,
// a slow-growth band and a phase-out band, then zero.
type LabourCreditSchedule struct {
	Threshold1 float64 `yaml:"threshold_1" json:"threshold_1"`
	Threshold2 float64 `yaml:"threshold_2" json:"threshold_2"`
	Threshold3 float64 `yaml:"threshold_3" json:"threshold_3"`
	Threshold4 float64 `yaml:"threshold_4" json:"threshold_4"`
	Rate1      float64 `yaml:"rate_1" json:"rate_1"`
	Rate2      float64 `yaml:"rate_2" json:"rate_2"`
	Rate3      float64 `yaml:"rate_3" json:"rate_3"`
	Rate4      float64 `yaml:"rate_4" json:"rate_4"`
	Anchor1    float64 `yaml:"anchor_1" json:"anchor_1"`
	Anchor2    float64 `yaml:"anchor_2" json:"anchor_2"`
	Anchor3    float64 `yaml:"anchor_3" json:"anchor_3"`
}

// CreditFor returns the labour tax credit for a gross income.
//
// Band 2 measures income from (Threshold1 - 1), band 3 from Threshold2
// itself. The published schedule really is asymmetric here; keep both
// conventions exactly as they are when entering a new tax year.
func (l LabourCreditSchedule) CreditFor(income float64) float64 {
	switch {
	case income < l.Threshold1:
		return l.Rate1 * income
	case income < l.Threshold2:
		return l.Anchor1 + l.Rate2*(income-(l.Threshold1-1))
	case income < l.Threshold3:
		return l.Anchor2 + l.Rate3*(income-l.Threshold2)
	case income < l.Threshold4:
		return l.Anchor3 - l.Rate4*(income-l.Threshold3)
	default:
		return 0
	}
}

// Schedule bundles the bracket and credit schedules for one tax year.
// A Schedule is immutable once loaded; all methods are pure and safe for
// concurrent use.
type Schedule struct {
	Year          int                   `yaml:"year" json:"year"`
	Bracket       BracketSchedule       `yaml:"bracket" json:"bracket"`
	GeneralCredit GeneralCreditSchedule `yaml:"general_credit" json:"general_credit"`
	LabourCredit  LabourCreditSchedule  `yaml:"labour_credit" json:"labour_credit"`
}

// BracketTax returns the box 1 tax before credits.
func (s *Schedule) BracketTax(income float64) float64 {
	return s.Bracket.TaxOn(income)
}

// TotalTax returns the tax owed after both credits.
//
// The floor at zero is load-bearing: in the credit phase-in region the
// unclamped amount is negative (credits exceed the bracket tax), and the
// liability must bottom out at zero rather than turn into a refund.
func (s *Schedule) TotalTax(income float64) float64 {
	amount := s.BracketTax(income) - s.GeneralCredit.CreditFor(income) - s.LabourCredit.CreditFor(income)

	return math.Max(amount, 0)
}

// NetIncome returns income minus TotalTax.
func (s *Schedule) NetIncome(income float64) float64 {
	return income - s.TotalTax(income)
}

// EffectiveRate returns TotalTax as a fraction of income, and exactly 0
// for a zero income.
func (s *Schedule) EffectiveRate(income float64) float64 {
	if income == 0 {
		return 0
	}

	return s.TotalTax(income) / income
}

// MarginalRate returns the tax owed on one additional euro of income: a
// unit forward difference, not an analytic derivative. It inherits the
// discontinuities of TotalTax, so it spikes at the general credit
// phase-out start instead of being smoothed.
func (s *Schedule) MarginalRate(income float64) float64 {
	return s.TotalTax(income+1) - s.TotalTax(income)
}

// Validate checks the schedule invariants: strictly increasing thresholds
// within each schedule and non-negative rates, credits and anchors.
func (s *Schedule) Validate() error {
	b := s.Bracket
	if b.Threshold <= 0 {
		return fmt.Errorf("bracket: threshold must be positive, got %v", b.Threshold)
	}
	if b.LowRate < 0 || b.HighRate < 0 {
		return fmt.Errorf("bracket: rates must be non-negative, got %v/%v", b.LowRate, b.HighRate)
	}

	g := s.GeneralCredit
	if !(g.PhaseOutStart > 0 && g.PhaseOutStart < g.PhaseOutEnd) {
		return fmt.Errorf("general_credit: thresholds must be strictly increasing, got %v/%v",
			g.PhaseOutStart, g.PhaseOutEnd)
	}
	if g.Maximum < 0 || g.PhaseOutRate < 0 {
		return fmt.Errorf("general_credit: maximum and phase-out rate must be non-negative, got %v/%v",
			g.Maximum, g.PhaseOutRate)
	}

	l := s.LabourCredit
	if !(l.Threshold1 > 0 && l.Threshold1 < l.Threshold2 && l.Threshold2 < l.Threshold3 && l.Threshold3 < l.Threshold4) {
		return fmt.Errorf("labour_credit: thresholds must be strictly increasing, got %v/%v/%v/%v",
			l.Threshold1, l.Threshold2, l.Threshold3, l.Threshold4)
	}
	for _, rate := range []float64{l.Rate1, l.Rate2, l.Rate3, l.Rate4} {
		if rate < 0 {
			return fmt.Errorf("labour_credit: rates must be non-negative, got %v", rate)
		}
	}
	for _, anchor := range []float64{l.Anchor1, l.Anchor2, l.Anchor3} {
		if anchor < 0 {
			return fmt.Errorf("labour_credit: anchors must be non-negative, got %v", anchor)
		}
	}

	return nil
}

// DefaultSchedule returns the 2023 box 1 schedule for people below state
// pension age.
func DefaultSchedule() Schedule {
	return Schedule{
		Year: 2023,
		Bracket: BracketSchedule{
			Threshold: 73031,
			LowRate:   0.3693,
			HighRate:  0.4950,
		},
		GeneralCredit: GeneralCreditSchedule{
			PhaseOutStart: 22661,
			PhaseOutEnd:   73031,
			Maximum:       3070,
			PhaseOutRate:  0.06095,
		},
		LabourCredit: LabourCreditSchedule{
			Threshold1: 10741,
			Threshold2: 23201,
			Threshold3: 37691,
			Threshold4: 115295,
			Rate1:      0.08231,
			Rate2:      0.29861,
			Rate3:      0.03085,
			Rate4:      0.06510,
			Anchor1:    884,
			Anchor2:    4605,
			Anchor3:    5052,
		},
	}
}
