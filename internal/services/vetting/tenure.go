package vetting

import (
	"fmt"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// EvaluateYearsOperating grades organizational tenure.
//
// Tiers (boundary values belong to the higher tier):
// - nil or negative years: fail (missing or anomalous ruling date)
// - years < YearsReviewMin: fail
// - YearsReviewMin <= years < YearsPassMin: review
// - years >= YearsPassMin: pass
func EvaluateYearsOperating(org models.Organization, t Thresholds) models.CheckOutcome {
	weight := t.Weights.YearsOperating

	if org.YearsOperating == nil {
		return outcome(CheckYears, models.CheckFail,
			"no ruling date on record; operating history unknown", weight)
	}
	years := *org.YearsOperating
	if years < 0 {
		// Ruling date in the future is a data anomaly, not a young org.
		return outcome(CheckYears, models.CheckFail,
			fmt.Sprintf("ruling date anomaly: computed %d years operating", years), weight)
	}
	if years < t.YearsReviewMin {
		return outcome(CheckYears, models.CheckFail,
			fmt.Sprintf("operating for %d years, below the %d-year minimum", years, t.YearsReviewMin), weight)
	}
	if years < t.YearsPassMin {
		return outcome(CheckYears, models.CheckReview,
			fmt.Sprintf("operating for %d years, short of the %d-year track record", years, t.YearsPassMin), weight)
	}
	return outcome(CheckYears, models.CheckPass,
		fmt.Sprintf("established track record: %d years operating", years), weight)
}
