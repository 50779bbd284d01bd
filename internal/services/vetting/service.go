package vetting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// Service runs Tier 1 screenings against a validated base configuration.
// The base thresholds are read-only after construction; per-sector
// resolution happens on every call and never mutates the base.
type Service struct {
	base   Thresholds
	logger arbor.ILogger
}

// NewService validates the base thresholds and every sector override
// merged onto them. Invalid configuration is a startup fatal, never a
// per-request error.
func NewService(base Thresholds, logger arbor.ILogger) (*Service, error) {
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("base thresholds: %w", err)
	}
	if err := ValidateSectorOverrides(base); err != nil {
		return nil, err
	}
	return &Service{base: base, logger: logger}, nil
}

// Thresholds returns the validated base configuration.
func (s *Service) Thresholds() Thresholds {
	return s.base
}

// EvaluateTier1 runs the full screening: five weighted checks, the
// red-flag scan, score aggregation, recommendation, and narrative summary.
// It is total over well-formed inputs; data-quality problems surface as
// check outcomes and flags, never as errors.
func (s *Service) EvaluateTier1(org models.Organization, filings []models.RawFiling, now time.Time) models.EvaluationResult {
	t := ResolveSector(s.base, org.NTEECode)

	outcomes := []models.CheckOutcome{
		Evaluate501c3(org, t),
		EvaluateYearsOperating(org, t),
		EvaluateRevenueRange(org, t),
		EvaluateExpenseRatio(org, t),
		EvaluateFilingRecency(org, t, now),
	}

	flags := DetectRedFlags(org, filings, t, now)
	score := Score(outcomes)
	rec := Recommend(score, flags, t)

	var reviewReasons []string
	for _, oc := range outcomes {
		if oc.Result != models.CheckPass {
			reviewReasons = append(reviewReasons, oc.Detail)
		}
	}

	result := models.EvaluationResult{
		RequestID:      uuid.New().String(),
		EIN:            org.EIN,
		Name:           org.Name,
		Passed:         rec == models.RecommendPass,
		Score:          score,
		Summary:        Summarize(org.Name, score, rec, outcomes, flags, org.YearsOperating),
		Checks:         outcomes,
		Recommendation: rec,
		ReviewReasons:  reviewReasons,
		RedFlags:       flags,
	}

	s.logger.Info().
		Str("ein", org.EIN).
		Int("score", score).
		Str("recommendation", string(rec)).
		Int("red_flags", len(flags)).
		Msg("Tier 1 evaluation completed")

	return result
}

// EvaluateRedFlagsOnly runs just the red-flag scan.
func (s *Service) EvaluateRedFlagsOnly(org models.Organization, filings []models.RawFiling, now time.Time) models.RedFlagResult {
	t := ResolveSector(s.base, org.NTEECode)
	flags := DetectRedFlags(org, filings, t, now)

	s.logger.Info().
		Str("ein", org.EIN).
		Int("red_flags", len(flags)).
		Msg("Red-flag scan completed")

	return models.RedFlagResult{
		EIN:      org.EIN,
		Name:     org.Name,
		RedFlags: flags,
		AllClean: len(flags) == 0,
	}
}
