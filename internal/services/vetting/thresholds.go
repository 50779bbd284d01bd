// Package vetting provides pure screening functions for nonprofit
// eligibility and health checks. All functions are stateless and perform
// no I/O; every evaluation is a function of its inputs and the resolved
// threshold configuration.
package vetting

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CheckWeights assigns points to each of the five checks.
// Weights must be non-negative and sum to exactly 100.
type CheckWeights struct {
	Status501c3    int `toml:"status_501c3" validate:"gte=0"`
	YearsOperating int `toml:"years_operating" validate:"gte=0"`
	RevenueRange   int `toml:"revenue_range" validate:"gte=0"`
	ExpenseRatio   int `toml:"expense_ratio" validate:"gte=0"`
	FilingRecency  int `toml:"filing_recency" validate:"gte=0"`
}

// Thresholds is the full set of named numeric parameters governing every
// check and red-flag rule. Constructed once at startup, validated, and
// read-only afterward. Sector resolution produces a new value rather than
// mutating the base.
type Thresholds struct {
	Weights CheckWeights `toml:"weights"`

	// Years-operating boundaries. Boundary values belong to the higher tier.
	YearsReviewMin int `toml:"years_review_min" validate:"gte=0"`
	YearsPassMin   int `toml:"years_pass_min" validate:"gte=0"`

	// Revenue-range boundaries, ascending.
	RevenueFailMin   float64 `toml:"revenue_fail_min" validate:"gte=0"`
	RevenuePassMin   float64 `toml:"revenue_pass_min" validate:"gte=0"`
	RevenuePassMax   float64 `toml:"revenue_pass_max" validate:"gte=0"`
	RevenueReviewMax float64 `toml:"revenue_review_max" validate:"gte=0"`

	// Expense-to-revenue ratio bands, ascending.
	RatioLowReview  float64 `toml:"ratio_low_review" validate:"gte=0"`
	RatioPassMin    float64 `toml:"ratio_pass_min" validate:"gte=0"`
	RatioPassMax    float64 `toml:"ratio_pass_max" validate:"gte=0"`
	RatioHighReview float64 `toml:"ratio_high_review" validate:"gte=0"`

	// Filing-recency boundaries in years, ascending.
	Filing990PassMax   int `toml:"filing_990_pass_max" validate:"gte=0"`
	Filing990ReviewMax int `toml:"filing_990_review_max" validate:"gte=0"`

	// Score-based recommendation cutoffs, descending: pass >= review.
	ScorePassMin   int `toml:"score_pass_min" validate:"gte=0,lte=100"`
	ScoreReviewMin int `toml:"score_review_min" validate:"gte=0,lte=100"`

	// Red-flag trigger values.
	RedFlagStale990Years         int     `toml:"red_flag_stale_990_years" validate:"gte=0"`
	RedFlagTooNewYears           int     `toml:"red_flag_too_new_years" validate:"gte=0"`
	RedFlagHighExpenseRatio      float64 `toml:"red_flag_high_expense_ratio" validate:"gte=0"`
	RedFlagLowExpenseRatio       float64 `toml:"red_flag_low_expense_ratio" validate:"gte=0"`
	RedFlagVeryLowRevenue        float64 `toml:"red_flag_very_low_revenue" validate:"gte=0"`
	RedFlagRevenueDeclinePercent float64 `toml:"red_flag_revenue_decline_percent" validate:"gte=0,lte=1"`
}

// DefaultThresholds returns the baseline configuration applied to sectors
// without an override entry.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Weights: CheckWeights{
			Status501c3:    30,
			YearsOperating: 15,
			RevenueRange:   20,
			ExpenseRatio:   20,
			FilingRecency:  15,
		},
		YearsReviewMin:               1,
		YearsPassMin:                 3,
		RevenueFailMin:               50_000,
		RevenuePassMin:               100_000,
		RevenuePassMax:               10_000_000,
		RevenueReviewMax:             25_000_000,
		RatioLowReview:               0.50,
		RatioPassMin:                 0.70,
		RatioPassMax:                 1.00,
		RatioHighReview:              1.20,
		Filing990PassMax:             2,
		Filing990ReviewMax:           4,
		ScorePassMin:                 75,
		ScoreReviewMin:               50,
		RedFlagStale990Years:         3,
		RedFlagTooNewYears:           1,
		RedFlagHighExpenseRatio:      1.50,
		RedFlagLowExpenseRatio:       0.50,
		RedFlagVeryLowRevenue:        25_000,
		RedFlagRevenueDeclinePercent: 0.50,
	}
}

var validate = validator.New()

// Validate checks the configuration for internal consistency. All
// violations are collected and reported together so a misconfigured
// deployment sees the full picture, not just the first problem.
func (t Thresholds) Validate() error {
	var violations []string

	if err := validate.Struct(t); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				violations = append(violations,
					fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.StructNamespace(), fe.Tag(), fe.Param(), fe.Value()))
			}
		} else {
			return fmt.Errorf("threshold validation failed: %w", err)
		}
	}

	sum := t.Weights.Status501c3 + t.Weights.YearsOperating + t.Weights.RevenueRange +
		t.Weights.ExpenseRatio + t.Weights.FilingRecency
	if sum != 100 {
		violations = append(violations, fmt.Sprintf("check weights must sum to 100 (got %d)", sum))
	}

	type ordered struct {
		name     string
		low, high float64
	}
	pairs := []ordered{
		{"revenue_fail_min <= revenue_pass_min", t.RevenueFailMin, t.RevenuePassMin},
		{"revenue_pass_min <= revenue_pass_max", t.RevenuePassMin, t.RevenuePassMax},
		{"revenue_pass_max <= revenue_review_max", t.RevenuePassMax, t.RevenueReviewMax},
		{"ratio_low_review <= ratio_pass_min", t.RatioLowReview, t.RatioPassMin},
		{"ratio_pass_min <= ratio_pass_max", t.RatioPassMin, t.RatioPassMax},
		{"ratio_pass_max <= ratio_high_review", t.RatioPassMax, t.RatioHighReview},
		{"years_review_min <= years_pass_min", float64(t.YearsReviewMin), float64(t.YearsPassMin)},
		{"filing_990_pass_max <= filing_990_review_max", float64(t.Filing990PassMax), float64(t.Filing990ReviewMax)},
		{"score_review_min <= score_pass_min", float64(t.ScoreReviewMin), float64(t.ScorePassMin)},
	}
	for _, p := range pairs {
		if p.low > p.high {
			violations = append(violations, fmt.Sprintf("%s violated (%v > %v)", p.name, p.low, p.high))
		}
	}

	if len(violations) > 0 {
		return fmt.Errorf("invalid thresholds: %s", strings.Join(violations, "; "))
	}
	return nil
}
