package vetting

import (
	"fmt"
	"math"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// EvaluateExpenseRatio grades the expense-to-revenue ratio of the most
// recent filing. The ratio is total expenses over total revenue, NOT an
// administrative-overhead metric.
//
// A missing or NaN ratio is a review, not a fail: the absence of a
// computable ratio is not itself disqualifying.
//
// Bands:
// - ratio < RatioLowReview: fail (funds not being deployed)
// - [RatioLowReview, RatioPassMin): review
// - [RatioPassMin, RatioPassMax]: pass
// - (RatioPassMax, RatioHighReview]: review
// - ratio > RatioHighReview: fail (spending beyond revenue)
func EvaluateExpenseRatio(org models.Organization, t Thresholds) models.CheckOutcome {
	weight := t.Weights.ExpenseRatio

	if org.LatestFiling == nil || org.LatestFiling.ExpenseRatio == nil {
		return outcome(CheckRatio, models.CheckReview,
			"expense ratio not computable from filing data", weight)
	}
	ratio := *org.LatestFiling.ExpenseRatio
	if math.IsNaN(ratio) {
		return outcome(CheckRatio, models.CheckReview,
			"expense ratio not computable from filing data", weight)
	}

	switch {
	case ratio < t.RatioLowReview:
		return outcome(CheckRatio, models.CheckFail,
			fmt.Sprintf("expense ratio %.2f indicates funds are not being deployed", ratio), weight)
	case ratio < t.RatioPassMin:
		return outcome(CheckRatio, models.CheckReview,
			fmt.Sprintf("expense ratio %.2f is below the healthy band", ratio), weight)
	case ratio <= t.RatioPassMax:
		return outcome(CheckRatio, models.CheckPass,
			fmt.Sprintf("expense ratio %.2f is within the healthy band", ratio), weight)
	case ratio <= t.RatioHighReview:
		return outcome(CheckRatio, models.CheckReview,
			fmt.Sprintf("expense ratio %.2f is above the healthy band", ratio), weight)
	default:
		return outcome(CheckRatio, models.CheckFail,
			fmt.Sprintf("expense ratio %.2f indicates spending far beyond revenue", ratio), weight)
	}
}
