package main

import (
	"fmt"
	"strings"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// formatEvaluation formats a full Tier 1 evaluation as markdown
func formatEvaluation(result models.EvaluationResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", result.Summary.Headline))
	sb.WriteString(fmt.Sprintf("**Organization:** %s (%s)\n", result.Name, result.EIN))
	sb.WriteString(fmt.Sprintf("**Score:** %d/100\n", result.Score))
	sb.WriteString(fmt.Sprintf("**Recommendation:** %s\n\n", result.Recommendation))

	sb.WriteString(fmt.Sprintf("%s\n\n", result.Summary.Justification))

	sb.WriteString("## Checks\n\n")
	for _, check := range result.Checks {
		marker := "FAIL"
		switch check.Result {
		case models.CheckPass:
			marker = "PASS"
		case models.CheckReview:
			marker = "REVIEW"
		}
		sb.WriteString(fmt.Sprintf("- **%s** (%s, weight %d): %s\n", check.Name, marker, check.Weight, check.Detail))
	}
	sb.WriteString("\n")

	if len(result.RedFlags) > 0 {
		sb.WriteString("## Red Flags\n\n")
		for _, flag := range result.RedFlags {
			sb.WriteString(fmt.Sprintf("- **%s** (%s severity): %s\n", flag.Type, flag.Severity, flag.Detail))
		}
		sb.WriteString("\n")
	}

	if len(result.Summary.KeyFactors) > 0 {
		sb.WriteString("## Key Factors\n\n")
		for _, factor := range result.Summary.KeyFactors {
			sb.WriteString(fmt.Sprintf("- %s\n", factor))
		}
		sb.WriteString("\n")
	}

	if len(result.Summary.NextSteps) > 0 {
		sb.WriteString("## Next Steps\n\n")
		for i, step := range result.Summary.NextSteps {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
	}

	return sb.String()
}

// formatRedFlags formats a red-flag scan as markdown
func formatRedFlags(result models.RedFlagResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Red-Flag Scan: %s (%s)\n\n", result.Name, result.EIN))

	if result.AllClean {
		sb.WriteString("No red flags detected.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%d red flag(s) detected:\n\n", len(result.RedFlags)))
	for _, flag := range result.RedFlags {
		sb.WriteString(fmt.Sprintf("- **%s** (%s severity): %s\n", flag.Type, flag.Severity, flag.Detail))
	}

	return sb.String()
}

// formatSearchResults formats organization search results as markdown
func formatSearchResults(query string, results []models.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Search Results for \"%s\" (%d results)\n\n", query, len(results)))

	if len(results) == 0 {
		sb.WriteString("No results found.\n")
		return sb.String()
	}

	for i, org := range results {
		sb.WriteString(fmt.Sprintf("%d. **%s** (EIN %s)\n", i+1, org.Name, org.EIN))
		var location []string
		if org.City != "" {
			location = append(location, org.City)
		}
		if org.State != "" {
			location = append(location, org.State)
		}
		if len(location) > 0 {
			sb.WriteString(fmt.Sprintf("   Location: %s\n", strings.Join(location, ", ")))
		}
		if org.Subsection != "" {
			sb.WriteString(fmt.Sprintf("   Subsection: 501(c)(%s)\n", strings.TrimPrefix(org.Subsection, "0")))
		}
		if org.NTEECode != "" {
			sb.WriteString(fmt.Sprintf("   NTEE: %s\n", org.NTEECode))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
