package vetting

import (
	"testing"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

func outcomesWith(results ...models.CheckResult) []models.CheckOutcome {
	weights := []int{30, 15, 20, 20, 15}
	outcomes := make([]models.CheckOutcome, len(results))
	for i, r := range results {
		outcomes[i] = models.CheckOutcome{Result: r, Weight: weights[i%len(weights)]}
	}
	return outcomes
}

func TestScoreBounds(t *testing.T) {
	if got := Score(nil); got != 0 {
		t.Errorf("Score(nil) = %d, want 0", got)
	}
	if got := Score(outcomesWith(models.CheckPass, models.CheckPass, models.CheckPass, models.CheckPass, models.CheckPass)); got != 100 {
		t.Errorf("Score(all pass) = %d, want 100", got)
	}
	if got := Score(outcomesWith(models.CheckFail, models.CheckFail, models.CheckFail, models.CheckFail, models.CheckFail)); got != 0 {
		t.Errorf("Score(all fail) = %d, want 0", got)
	}
}

func TestScoreHalfWeightForReview(t *testing.T) {
	outcomes := []models.CheckOutcome{
		{Result: models.CheckPass, Weight: 30},
		{Result: models.CheckReview, Weight: 20},
		{Result: models.CheckFail, Weight: 50},
	}
	if got := Score(outcomes); got != 40 {
		t.Errorf("Score() = %d, want 40 (30 + 20/2)", got)
	}
}

func TestScoreRoundsHalfUp(t *testing.T) {
	outcomes := []models.CheckOutcome{
		{Result: models.CheckReview, Weight: 15}, // 7.5
	}
	if got := Score(outcomes); got != 8 {
		t.Errorf("Score() = %d, want 8 (7.5 rounds up)", got)
	}
}

func TestScoreMonotonicUpgrade(t *testing.T) {
	base := outcomesWith(models.CheckFail, models.CheckReview, models.CheckPass, models.CheckFail, models.CheckReview)
	upgrade := map[models.CheckResult]models.CheckResult{
		models.CheckFail:   models.CheckReview,
		models.CheckReview: models.CheckPass,
		models.CheckPass:   models.CheckPass,
	}

	before := Score(base)
	for i := range base {
		bumped := make([]models.CheckOutcome, len(base))
		copy(bumped, base)
		bumped[i].Result = upgrade[base[i].Result]

		if after := Score(bumped); after < before {
			t.Errorf("upgrading outcome %d decreased score: %d -> %d", i, before, after)
		}
	}
}
