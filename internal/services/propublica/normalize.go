package propublica

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

const hoursPerYear = 24 * 365.25

// formatEIN renders a numeric EIN in the canonical NN-NNNNNNN form,
// zero-padding short values on the left.
func formatEIN(ein int64) string {
	digits := fmt.Sprintf("%09d", ein)
	return digits[:2] + "-" + digits[2:]
}

// canonicalEIN validates a caller-supplied EIN and returns the bare digit
// string used in provider URLs. Dashes and surrounding whitespace are
// tolerated; anything else is rejected.
func canonicalEIN(ein string) (string, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(ein), "-", "")
	if cleaned == "" {
		return "", fmt.Errorf("EIN is required")
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("EIN %q contains non-digit characters", ein)
		}
	}
	if len(cleaned) > 9 {
		return "", fmt.Errorf("EIN %q has more than 9 digits", ein)
	}
	return strings.Repeat("0", 9-len(cleaned)) + cleaned, nil
}

// subsectionCode formats the IRS subsection as a two-character code,
// preferring the organization-level field over the filing-level one.
func subsectionCode(org rawOrganization) string {
	code := org.SubsectionCode
	if code == nil {
		code = org.Subseccd
	}
	if code == nil {
		return ""
	}
	return fmt.Sprintf("%02d", *code)
}

// parseRulingDate accepts the provider's ruling date in either
// "YYYY-MM-DD" or "YYYY-MM" form. Returns nil when absent or malformed.
func parseRulingDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// yearsOperating computes whole years elapsed since the ruling date.
// A future ruling date yields a negative value, which downstream checks
// treat as a data anomaly rather than a young organization.
func yearsOperating(rulingDate *time.Time, now time.Time) *int {
	if rulingDate == nil {
		return nil
	}
	years := int(math.Floor(now.Sub(*rulingDate).Hours() / hoursPerYear))
	return &years
}

// formTypeName maps the provider's numeric form type to its IRS name.
func formTypeName(formType *int) string {
	if formType == nil {
		return ""
	}
	switch *formType {
	case 0:
		return "990"
	case 1:
		return "990-EZ"
	case 2:
		return "990-PF"
	default:
		return ""
	}
}

// expenseRatio is total functional expenses divided by total revenue for a
// single filing. Nil when revenue is missing or non-positive; a ratio
// against zero or negative revenue carries no meaning.
func expenseRatio(revenue, expenses *float64) *float64 {
	if revenue == nil || expenses == nil || *revenue <= 0 {
		return nil
	}
	ratio := *expenses / *revenue
	return &ratio
}

// normalizeOrganization converts a raw provider response into the
// normalized profile plus the full filing history. The filing with the
// greatest period code becomes the latest-filing summary.
func normalizeOrganization(resp *organizationResponse, now time.Time) (models.Organization, []models.RawFiling) {
	raw := resp.Organization
	ruling := parseRulingDate(raw.RulingDate)

	org := models.Organization{
		EIN:            formatEIN(int64(raw.EIN)),
		Name:           raw.Name,
		City:           raw.City,
		State:          raw.State,
		RulingDate:     ruling,
		YearsOperating: yearsOperating(ruling, now),
		Subsection:     subsectionCode(raw),
		NTEECode:       raw.NTEECode,
		FilingCount:    len(resp.FilingsWithData),
	}

	filings := make([]models.RawFiling, 0, len(resp.FilingsWithData))
	var latest *rawFiling
	for i := range resp.FilingsWithData {
		f := &resp.FilingsWithData[i]
		filings = append(filings, models.RawFiling{
			TaxPeriod:     int(f.TaxPeriod),
			TotalRevenue:  f.TotalRevenue,
			TotalExpenses: f.TotalExpenses,
			TotalAssets:   f.TotalAssets,
			Contributions: f.Contributions,
		})
		if latest == nil || f.TaxPeriod > latest.TaxPeriod {
			latest = f
		}
	}

	// Trend detection expects newest first.
	sort.SliceStable(filings, func(i, j int) bool {
		return filings[i].TaxPeriod > filings[j].TaxPeriod
	})

	if latest != nil {
		org.LatestFiling = &models.FilingSummary{
			TaxPeriod:      strconv.Itoa(int(latest.TaxPeriod)),
			TaxYear:        int(latest.TaxPeriod) / 100,
			FormType:       formTypeName(latest.FormType),
			TotalRevenue:   latest.TotalRevenue,
			TotalExpenses:  latest.TotalExpenses,
			TotalAssets:    latest.TotalAssets,
			TotalLiability: latest.TotalLiabilities,
			ExpenseRatio:   expenseRatio(latest.TotalRevenue, latest.TotalExpenses),
			ProgramRevenue: latest.ProgramRevenue,
			Contributions:  latest.Contributions,
		}
	}

	return org, filings
}

// normalizeSearchResults converts raw search rows into search results.
func normalizeSearchResults(resp *searchResponse) []models.SearchResult {
	results := make([]models.SearchResult, 0, len(resp.Organizations))
	for _, raw := range resp.Organizations {
		subsection := ""
		if raw.Subseccd != nil {
			subsection = fmt.Sprintf("%02d", *raw.Subseccd)
		}
		results = append(results, models.SearchResult{
			EIN:        formatEIN(int64(raw.EIN)),
			Name:       raw.Name,
			City:       raw.City,
			State:      raw.State,
			Subsection: subsection,
			NTEECode:   raw.NTEECode,
		})
	}
	return results
}
