package interfaces

import (
	"time"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// VettingService runs Tier 1 screenings over materialized organization
// data. Both operations are total over well-formed inputs: data-quality
// problems surface as outcomes and flags, never as errors.
type VettingService interface {
	EvaluateTier1(org models.Organization, filings []models.RawFiling, now time.Time) models.EvaluationResult
	EvaluateRedFlagsOnly(org models.Organization, filings []models.RawFiling, now time.Time) models.RedFlagResult
}
