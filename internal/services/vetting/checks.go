package vetting

import "github.com/kofort9/nonprofit-vetting-mcp/internal/models"

// Check names, in the fixed order they appear in every evaluation result.
const (
	Check501c3   = "501(c)(3) Status"
	CheckYears   = "Years Operating"
	CheckRevenue = "Revenue Range"
	CheckRatio   = "Expense Ratio"
	CheckRecency = "Filing Recency"
)

func outcome(name string, result models.CheckResult, detail string, weight int) models.CheckOutcome {
	return models.CheckOutcome{
		Name:   name,
		Passed: result == models.CheckPass,
		Result: result,
		Detail: detail,
		Weight: weight,
	}
}
