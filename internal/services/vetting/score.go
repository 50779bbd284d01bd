package vetting

import (
	"math"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// Score combines graded outcomes into a single 0-100 value.
//
// A pass contributes its full weight, a review half, a fail nothing.
// The sum is rounded to the nearest integer with .5 rounding up.
// An empty outcome list scores zero.
func Score(outcomes []models.CheckOutcome) int {
	total := 0.0
	for _, oc := range outcomes {
		switch oc.Result {
		case models.CheckPass:
			total += float64(oc.Weight)
		case models.CheckReview:
			total += float64(oc.Weight) / 2
		}
	}
	return int(math.Floor(total + 0.5))
}
