package vetting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

func TestSummarizeHeadlines(t *testing.T) {
	tests := []struct {
		rec  models.Recommendation
		want string
	}{
		{models.RecommendPass, "Approved for Tier 2 Vetting"},
		{models.RecommendReview, "Flagged for Manual Review"},
		{models.RecommendReject, "Rejected at Tier 1 Screening"},
	}

	for _, tt := range tests {
		s := Summarize("Test Org", 80, tt.rec, nil, nil, iptr(5))
		assert.Equal(t, tt.want, s.Headline)
		assert.NotEmpty(t, s.NextSteps)
	}
}

func TestSummarizeJustification(t *testing.T) {
	outcomes := []models.CheckOutcome{
		{Name: Check501c3, Result: models.CheckPass, Detail: "registered 501(c)(3) public charity"},
		{Name: CheckRevenue, Result: models.CheckFail, Detail: "reported zero revenue for the most recent filing"},
		{Name: CheckRatio, Result: models.CheckReview, Detail: "expense ratio not computable from filing data"},
	}

	s := Summarize("Helping Hands", 45, models.RecommendReject, outcomes, nil, iptr(12))
	assert.Contains(t, s.Justification, "Helping Hands")
	assert.Contains(t, s.Justification, "45/100")
	assert.Contains(t, s.Justification, "12 years")
	assert.Contains(t, s.Justification, "reported zero revenue")
	assert.Contains(t, s.Justification, "; ") // non-passing details are semicolon-joined
}

func TestSummarizeUnknownYears(t *testing.T) {
	s := Summarize("Mystery Org", 10, models.RecommendReject, nil, nil, nil)
	assert.Contains(t, s.Justification, "unknown")
}

func TestSummarizeNoIssuesSentinel(t *testing.T) {
	outcomes := []models.CheckOutcome{
		{Name: Check501c3, Result: models.CheckPass, Detail: "registered 501(c)(3) public charity"},
	}
	s := Summarize("Clean Org", 100, models.RecommendPass, outcomes, nil, iptr(15))
	assert.Contains(t, s.Justification, noConcerns)
}

func TestSummarizeIssuesCappedAtThree(t *testing.T) {
	outcomes := []models.CheckOutcome{
		{Name: Check501c3, Result: models.CheckFail, Detail: "issue one"},
		{Name: CheckYears, Result: models.CheckFail, Detail: "issue two"},
		{Name: CheckRevenue, Result: models.CheckFail, Detail: "issue three"},
		{Name: CheckRatio, Result: models.CheckFail, Detail: "issue four"},
	}
	s := Summarize("Troubled Org", 0, models.RecommendReject, outcomes, nil, nil)
	assert.Contains(t, s.Justification, "issue three")
	assert.NotContains(t, s.Justification, "issue four")
}

func TestSummarizeKeyFactorPrefixes(t *testing.T) {
	outcomes := []models.CheckOutcome{
		{Name: Check501c3, Result: models.CheckPass},
		{Name: CheckYears, Result: models.CheckReview},
		{Name: CheckRevenue, Result: models.CheckFail},
		{Name: "Unknown Check", Result: models.CheckFail}, // silently skipped
	}

	s := Summarize("Org", 50, models.RecommendReview, outcomes, nil, iptr(2))
	require.Len(t, s.KeyFactors, 3)
	assert.True(t, strings.HasPrefix(s.KeyFactors[0], "+ "))
	assert.True(t, strings.HasPrefix(s.KeyFactors[1], "~ "))
	assert.True(t, strings.HasPrefix(s.KeyFactors[2], "- "))
}

func TestSummarizeFlagLines(t *testing.T) {
	flags := []models.RedFlag{
		{Type: models.FlagStaleFiling, Severity: models.SeverityHigh},
		{Type: "mystery_flag", Severity: models.SeverityLow, Detail: "something odd in the data"},
	}

	s := Summarize("Org", 20, models.RecommendReject, nil, flags, nil)
	require.Len(t, s.KeyFactors, 2)
	assert.Equal(t, "- most recent filing is stale (high severity)", s.KeyFactors[0])
	// Unrecognized flag types fall back to the flag's own detail text.
	assert.Equal(t, "- something odd in the data (low severity)", s.KeyFactors[1])
}

func TestSummarizeNextStepsFreshCopy(t *testing.T) {
	first := Summarize("Org A", 90, models.RecommendPass, nil, nil, iptr(5))
	second := Summarize("Org B", 90, models.RecommendPass, nil, nil, iptr(5))

	require.NotEmpty(t, first.NextSteps)
	first.NextSteps[0] = "MUTATED"

	assert.NotEqual(t, "MUTATED", second.NextSteps[0],
		"mutating one call's next_steps must not affect another's")

	third := Summarize("Org C", 90, models.RecommendPass, nil, nil, iptr(5))
	assert.NotEqual(t, "MUTATED", third.NextSteps[0],
		"the static template must be unaffected by caller mutation")
}
