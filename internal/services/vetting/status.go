package vetting

import (
	"fmt"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// Evaluate501c3 checks IRS tax-exemption status.
//
// Pass iff the subsection code is exactly "03" (public charity eligible
// for deductible donations). There is no review tier: any other code,
// including unknown, fails.
func Evaluate501c3(org models.Organization, t Thresholds) models.CheckOutcome {
	weight := t.Weights.Status501c3

	if org.Subsection == "03" {
		return outcome(Check501c3, models.CheckPass,
			"registered 501(c)(3) public charity", weight)
	}
	if org.Subsection == "" {
		return outcome(Check501c3, models.CheckFail,
			"no IRS subsection code on record", weight)
	}
	return outcome(Check501c3, models.CheckFail,
		fmt.Sprintf("subsection code %q is not 501(c)(3)", org.Subsection), weight)
}
