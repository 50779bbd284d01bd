package vetting

import (
	"fmt"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// EvaluateRevenueRange grades most-recent-filing revenue against the
// configured bands.
//
// Missing, zero, and negative revenue are three distinct fail states and
// must never collapse into one branch: zero revenue is a reported figure,
// not absent data.
//
// Bands:
// - revenue < RevenueFailMin: fail
// - [RevenueFailMin, RevenuePassMin): review
// - [RevenuePassMin, RevenuePassMax]: pass (inclusive both ends)
// - (RevenuePassMax, RevenueReviewMax]: review
// - revenue > RevenueReviewMax: fail
func EvaluateRevenueRange(org models.Organization, t Thresholds) models.CheckOutcome {
	weight := t.Weights.RevenueRange

	if org.LatestFiling == nil || org.LatestFiling.TotalRevenue == nil {
		return outcome(CheckRevenue, models.CheckFail,
			"no revenue data on record", weight)
	}
	revenue := *org.LatestFiling.TotalRevenue

	switch {
	case revenue < 0:
		return outcome(CheckRevenue, models.CheckFail,
			fmt.Sprintf("reported negative revenue ($%.0f)", revenue), weight)
	case revenue == 0:
		return outcome(CheckRevenue, models.CheckFail,
			"reported zero revenue for the most recent filing", weight)
	case revenue < t.RevenueFailMin:
		return outcome(CheckRevenue, models.CheckFail,
			fmt.Sprintf("revenue $%.0f is below the $%.0f floor", revenue, t.RevenueFailMin), weight)
	case revenue < t.RevenuePassMin:
		return outcome(CheckRevenue, models.CheckReview,
			fmt.Sprintf("revenue $%.0f is under the $%.0f target range", revenue, t.RevenuePassMin), weight)
	case revenue <= t.RevenuePassMax:
		return outcome(CheckRevenue, models.CheckPass,
			fmt.Sprintf("revenue $%.0f is within the target range", revenue), weight)
	case revenue <= t.RevenueReviewMax:
		return outcome(CheckRevenue, models.CheckReview,
			fmt.Sprintf("revenue $%.0f exceeds the $%.0f target range", revenue, t.RevenuePassMax), weight)
	default:
		return outcome(CheckRevenue, models.CheckFail,
			fmt.Sprintf("revenue $%.0f is outside the screenable range", revenue), weight)
	}
}
