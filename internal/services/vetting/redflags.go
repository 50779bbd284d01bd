package vetting

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// DetectRedFlags scans an organization for disqualifying or cautionary
// conditions. The rules are independent of the weighted checks and of each
// other; the same underlying data point may surface both as a failed check
// and as a flag, under different framings.
func DetectRedFlags(org models.Organization, filings []models.RawFiling, t Thresholds, now time.Time) []models.RedFlag {
	var flags []models.RedFlag

	if org.FilingCount == 0 || org.LatestFiling == nil {
		flags = append(flags, models.RedFlag{
			Type:     models.FlagNoFilings,
			Severity: models.SeverityHigh,
			Detail:   "no tax filings on record",
		})
	}

	if org.Subsection != "03" {
		flags = append(flags, models.RedFlag{
			Type:     models.FlagNotTaxExempt,
			Severity: models.SeverityHigh,
			Detail:   "organization is not a registered 501(c)(3) public charity",
		})
	}

	if org.RulingDate == nil || org.YearsOperating == nil {
		flags = append(flags, models.RedFlag{
			Type:     models.FlagNoRulingDate,
			Severity: models.SeverityHigh,
			Detail:   "no IRS ruling date on record",
		})
	} else if *org.YearsOperating >= 0 && *org.YearsOperating < t.RedFlagTooNewYears {
		// Strict less-than: an org exactly at the boundary is not "too new".
		flags = append(flags, models.RedFlag{
			Type:     models.FlagTooNew,
			Severity: models.SeverityMedium,
			Detail:   fmt.Sprintf("organization is under %d year(s) old", t.RedFlagTooNewYears),
		})
	}

	if org.LatestFiling != nil {
		if periodEnd, ok := ParseTaxPeriod(org.LatestFiling.TaxPeriod); ok {
			age := now.Sub(periodEnd).Hours() / hoursPerYear
			if age > float64(t.RedFlagStale990Years) {
				flags = append(flags, models.RedFlag{
					Type:     models.FlagStaleFiling,
					Severity: models.SeverityHigh,
					Detail:   fmt.Sprintf("most recent filing is %.1f years old", age),
				})
			}
		}

		if r := org.LatestFiling.ExpenseRatio; r != nil && !math.IsNaN(*r) {
			if *r > t.RedFlagHighExpenseRatio {
				flags = append(flags, models.RedFlag{
					Type:     models.FlagUnsustainableSpending,
					Severity: models.SeverityHigh,
					Detail:   fmt.Sprintf("expenses are %.0f%% of revenue", *r*100),
				})
			}
			if *r < t.RedFlagLowExpenseRatio {
				flags = append(flags, models.RedFlag{
					Type:     models.FlagLowFundDeployment,
					Severity: models.SeverityMedium,
					Detail:   fmt.Sprintf("only %.0f%% of revenue is being spent on operations", *r*100),
				})
			}
		}

		// Zero revenue DOES trigger this flag; absent revenue does not.
		if rev := org.LatestFiling.TotalRevenue; rev != nil && *rev < t.RedFlagVeryLowRevenue {
			flags = append(flags, models.RedFlag{
				Type:     models.FlagVeryLowRevenue,
				Severity: models.SeverityMedium,
				Detail:   fmt.Sprintf("reported revenue of $%.0f is below $%.0f", *rev, t.RedFlagVeryLowRevenue),
			})
		}
	}

	if flag, ok := detectRevenueDecline(filings, t); ok {
		flags = append(flags, flag)
	}

	return flags
}

// detectRevenueDecline compares the two most recent filings by period code.
// Zero or negative previous-period revenue skips the rule entirely rather
// than risking a division artifact.
func detectRevenueDecline(filings []models.RawFiling, t Thresholds) (models.RedFlag, bool) {
	if len(filings) < 2 {
		return models.RedFlag{}, false
	}

	sorted := make([]models.RawFiling, len(filings))
	copy(sorted, filings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TaxPeriod > sorted[j].TaxPeriod
	})

	latest, previous := sorted[0], sorted[1]
	if latest.TotalRevenue == nil || previous.TotalRevenue == nil {
		return models.RedFlag{}, false
	}
	prev := *previous.TotalRevenue
	if prev <= 0 {
		return models.RedFlag{}, false
	}

	decline := (prev - *latest.TotalRevenue) / prev
	if math.IsNaN(decline) || math.IsInf(decline, 0) {
		return models.RedFlag{}, false
	}
	if decline <= t.RedFlagRevenueDeclinePercent {
		return models.RedFlag{}, false
	}

	return models.RedFlag{
		Type:     models.FlagRevenueDecline,
		Severity: models.SeverityMedium,
		Detail: fmt.Sprintf("revenue fell %.0f%% between filings ($%.0f to $%.0f)",
			decline*100, prev, *latest.TotalRevenue),
	}, true
}
