package vetting

import "github.com/kofort9/nonprofit-vetting-mcp/internal/models"

// Recommend reconciles the weighted score with the red-flag scan.
//
// Any high-severity flag forces a reject regardless of score. Otherwise
// the score cutoffs decide: >= ScorePassMin passes, >= ScoreReviewMin
// goes to manual review, anything lower is rejected.
func Recommend(score int, flags []models.RedFlag, t Thresholds) models.Recommendation {
	for _, f := range flags {
		if f.Severity == models.SeverityHigh {
			return models.RecommendReject
		}
	}
	if score >= t.ScorePassMin {
		return models.RecommendPass
	}
	if score >= t.ScoreReviewMin {
		return models.RecommendReview
	}
	return models.RecommendReject
}
