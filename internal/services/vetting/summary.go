package vetting

import (
	"fmt"
	"strings"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

const noConcerns = "no significant concerns identified"

var headlines = map[models.Recommendation]string{
	models.RecommendPass:   "Approved for Tier 2 Vetting",
	models.RecommendReview: "Flagged for Manual Review",
	models.RecommendReject: "Rejected at Tier 1 Screening",
}

var nextSteps = map[models.Recommendation][]string{
	models.RecommendPass: {
		"Proceed to Tier 2 due-diligence review",
		"Request most recent audited financial statements",
	},
	models.RecommendReview: {
		"Assign to an analyst for manual review",
		"Verify flagged items against the organization's latest Form 990",
		"Request clarification from the organization if needed",
	},
	models.RecommendReject: {
		"Notify the requester that the organization did not clear Tier 1",
		"Document the disqualifying findings for the audit trail",
	},
}

// factorText maps check names to short key-factor lines. Checks without an
// entry are silently skipped.
var factorText = map[string]string{
	Check501c3:   "IRS 501(c)(3) public charity status",
	CheckYears:   "operating history and track record",
	CheckRevenue: "annual revenue within screenable range",
	CheckRatio:   "expense-to-revenue ratio",
	CheckRecency: "recency of tax filings",
}

// flagText maps red-flag types to key-factor lines. Unrecognized types
// fall back to the flag's own detail text.
var flagText = map[models.RedFlagType]string{
	models.FlagNoFilings:             "no tax filings on record",
	models.FlagNotTaxExempt:          "not a registered 501(c)(3)",
	models.FlagNoRulingDate:          "no IRS ruling date on record",
	models.FlagTooNew:                "organization is very newly established",
	models.FlagStaleFiling:           "most recent filing is stale",
	models.FlagUnsustainableSpending: "spending exceeds revenue at an unsustainable rate",
	models.FlagLowFundDeployment:     "low deployment of funds toward operations",
	models.FlagVeryLowRevenue:        "very low reported revenue",
	models.FlagRevenueDecline:        "significant revenue decline between filings",
}

// Summarize renders a verdict into structured explanation text. The
// returned NextSteps slice is a fresh copy per call; callers may mutate it
// without affecting the static templates.
func Summarize(
	name string,
	score int,
	rec models.Recommendation,
	outcomes []models.CheckOutcome,
	flags []models.RedFlag,
	yearsOperating *int,
) models.Summary {
	years := "unknown"
	if yearsOperating != nil {
		years = fmt.Sprintf("%d years", *yearsOperating)
	}

	var issues []string
	for _, oc := range outcomes {
		if oc.Result != models.CheckPass && len(issues) < 3 {
			issues = append(issues, oc.Detail)
		}
	}
	issueSummary := noConcerns
	if len(issues) > 0 {
		issueSummary = strings.Join(issues, "; ")
	}

	justification := fmt.Sprintf(
		"%s scored %d/100 in Tier 1 screening. Operating history: %s. Findings: %s.",
		name, score, years, issueSummary)

	var factors []string
	for _, oc := range outcomes {
		text, known := factorText[oc.Name]
		if !known {
			continue
		}
		prefix := "~"
		switch oc.Result {
		case models.CheckPass:
			prefix = "+"
		case models.CheckFail:
			prefix = "-"
		}
		factors = append(factors, fmt.Sprintf("%s %s", prefix, text))
	}

	checkDerived := strings.Join(factors, "\n")
	for _, f := range flags {
		text, known := flagText[f.Type]
		if !known {
			text = f.Detail
		}
		// Skip only when the same text already surfaced via a check line;
		// flags are never deduplicated against each other.
		if strings.Contains(checkDerived, text) {
			continue
		}
		factors = append(factors, fmt.Sprintf("- %s (%s severity)", text, f.Severity))
	}

	steps := append([]string(nil), nextSteps[rec]...)

	return models.Summary{
		Headline:      headlines[rec],
		Justification: justification,
		KeyFactors:    factors,
		NextSteps:     steps,
	}
}
