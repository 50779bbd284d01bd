package vetting

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// hoursPerYear converts elapsed time to fractional years.
const hoursPerYear = 24 * 365.25

// EvaluateFilingRecency grades how current the most recent filing is.
//
// Zero filings or no filing summary fails outright. A malformed period
// code is treated as an infinitely old filing (fail) without surfacing
// any unparseable value in the detail text.
//
// Bands (elapsed years since the filing period ended):
// - <= Filing990PassMax: pass
// - <= Filing990ReviewMax: review
// - otherwise: fail
func EvaluateFilingRecency(org models.Organization, t Thresholds, now time.Time) models.CheckOutcome {
	weight := t.Weights.FilingRecency

	if org.FilingCount == 0 || org.LatestFiling == nil {
		return outcome(CheckRecency, models.CheckFail,
			"no filings on record", weight)
	}

	periodEnd, ok := ParseTaxPeriod(org.LatestFiling.TaxPeriod)
	if !ok {
		return outcome(CheckRecency, models.CheckFail,
			"filing period is unreadable; treating the filing as out of date", weight)
	}

	elapsed := now.Sub(periodEnd).Hours() / hoursPerYear
	switch {
	case elapsed <= float64(t.Filing990PassMax):
		return outcome(CheckRecency, models.CheckPass,
			fmt.Sprintf("most recent filing is %.1f years old", elapsed), weight)
	case elapsed <= float64(t.Filing990ReviewMax):
		return outcome(CheckRecency, models.CheckReview,
			fmt.Sprintf("most recent filing is %.1f years old", elapsed), weight)
	default:
		return outcome(CheckRecency, models.CheckFail,
			fmt.Sprintf("most recent filing is %.1f years old", elapsed), weight)
	}
}

// ParseTaxPeriod decodes a YYYYMM period code into the instant the period
// ended. Returns false for anything that does not decode to a plausible
// year and month.
func ParseTaxPeriod(period string) (time.Time, bool) {
	if len(period) != 6 {
		return time.Time{}, false
	}
	code, err := strconv.Atoi(period)
	if err != nil || code <= 0 {
		return time.Time{}, false
	}
	year := code / 100
	month := code % 100
	if year < 1900 || month < 1 || month > 12 {
		return time.Time{}, false
	}
	// First day of the following month = end of the filing period.
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0), true
}
