package vetting

import (
	"testing"
	"time"

	"github.com/kofort9/nonprofit-vetting-mcp/internal/models"
)

// cleanOrg is a well-formed charity that triggers no flags at recencyNow.
func cleanOrg() models.Organization {
	ruling := time.Date(2009, time.March, 1, 0, 0, 0, 0, time.UTC)
	return models.Organization{
		EIN:            "13-1234567",
		Name:           "Clean Charity",
		Subsection:     "03",
		RulingDate:     &ruling,
		YearsOperating: iptr(15),
		FilingCount:    1,
		LatestFiling: &models.FilingSummary{
			TaxPeriod:    "202306",
			TotalRevenue: fptr(500_000),
			ExpenseRatio: fptr(0.80),
		},
	}
}

func flagTypes(flags []models.RedFlag) map[models.RedFlagType]models.Severity {
	out := make(map[models.RedFlagType]models.Severity, len(flags))
	for _, f := range flags {
		out[f.Type] = f.Severity
	}
	return out
}

func TestDetectRedFlagsCleanOrg(t *testing.T) {
	flags := DetectRedFlags(cleanOrg(), nil, DefaultThresholds(), recencyNow)
	if len(flags) != 0 {
		t.Errorf("clean organization should raise no flags, got %v", flags)
	}
}

func TestDetectRedFlagsMissingEverything(t *testing.T) {
	org := models.Organization{EIN: "13-0000000", Name: "Ghost Org"}
	flags := flagTypes(DetectRedFlags(org, nil, DefaultThresholds(), recencyNow))

	for _, want := range []models.RedFlagType{models.FlagNoFilings, models.FlagNotTaxExempt, models.FlagNoRulingDate} {
		if sev, ok := flags[want]; !ok {
			t.Errorf("expected flag %s", want)
		} else if sev != models.SeverityHigh {
			t.Errorf("flag %s severity = %s, want high", want, sev)
		}
	}
}

func TestDetectRedFlagsTooNewBoundary(t *testing.T) {
	cfg := DefaultThresholds() // tooNewYears=1

	org := cleanOrg()
	org.YearsOperating = iptr(1)
	if _, ok := flagTypes(DetectRedFlags(org, nil, cfg, recencyNow))[models.FlagTooNew]; ok {
		t.Error("years_operating == threshold must NOT trigger too-new")
	}

	org.YearsOperating = iptr(0)
	flags := flagTypes(DetectRedFlags(org, nil, cfg, recencyNow))
	if sev, ok := flags[models.FlagTooNew]; !ok {
		t.Error("years_operating == 0 should trigger too-new")
	} else if sev != models.SeverityMedium {
		t.Errorf("too-new severity = %s, want medium", sev)
	}
}

func TestDetectRedFlagsFutureRulingDate(t *testing.T) {
	org := cleanOrg()
	org.YearsOperating = iptr(-1)
	if _, ok := flagTypes(DetectRedFlags(org, nil, DefaultThresholds(), recencyNow))[models.FlagTooNew]; ok {
		t.Error("negative years operating must not read as too-new")
	}
}

func TestDetectRedFlagsStaleFiling(t *testing.T) {
	org := cleanOrg()
	org.LatestFiling.TaxPeriod = "201906" // ~5 years before recencyNow
	flags := flagTypes(DetectRedFlags(org, nil, DefaultThresholds(), recencyNow))
	if sev, ok := flags[models.FlagStaleFiling]; !ok {
		t.Error("five-year-old filing should trigger stale-filing")
	} else if sev != models.SeverityHigh {
		t.Errorf("stale-filing severity = %s, want high", sev)
	}

	// Malformed period: the rule is skipped, recency handles it elsewhere.
	org.LatestFiling.TaxPeriod = "bogus"
	if _, ok := flagTypes(DetectRedFlags(org, nil, DefaultThresholds(), recencyNow))[models.FlagStaleFiling]; ok {
		t.Error("unparseable period must not trigger stale-filing")
	}
}

func TestDetectRedFlagsExpenseRatioTriggers(t *testing.T) {
	cfg := DefaultThresholds() // high=1.50, low=0.50, strict comparisons

	tests := []struct {
		name  string
		ratio float64
		want  models.RedFlagType
		fires bool
	}{
		{"well above high trigger", 1.60, models.FlagUnsustainableSpending, true},
		{"exactly at high trigger", 1.50, models.FlagUnsustainableSpending, false},
		{"well below low trigger", 0.40, models.FlagLowFundDeployment, true},
		{"exactly at low trigger", 0.50, models.FlagLowFundDeployment, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org := cleanOrg()
			org.LatestFiling.ExpenseRatio = fptr(tt.ratio)
			_, ok := flagTypes(DetectRedFlags(org, nil, cfg, recencyNow))[tt.want]
			if ok != tt.fires {
				t.Errorf("ratio %.2f: flag %s fired=%v, want %v", tt.ratio, tt.want, ok, tt.fires)
			}
		})
	}
}

func TestDetectRedFlagsVeryLowRevenue(t *testing.T) {
	org := cleanOrg()
	org.LatestFiling.TotalRevenue = fptr(0)
	if _, ok := flagTypes(DetectRedFlags(org, nil, DefaultThresholds(), recencyNow))[models.FlagVeryLowRevenue]; !ok {
		t.Error("zero revenue must trigger very-low-revenue (not skipped as falsy)")
	}

	org.LatestFiling.TotalRevenue = nil
	if _, ok := flagTypes(DetectRedFlags(org, nil, DefaultThresholds(), recencyNow))[models.FlagVeryLowRevenue]; ok {
		t.Error("absent revenue must not trigger very-low-revenue")
	}
}

func TestDetectRevenueDecline(t *testing.T) {
	cfg := DefaultThresholds() // declinePercent=0.50

	tests := []struct {
		name    string
		filings []models.RawFiling
		fires   bool
	}{
		{
			name: "60 percent drop fires",
			filings: []models.RawFiling{
				{TaxPeriod: 202206, TotalRevenue: fptr(1_000_000)},
				{TaxPeriod: 202306, TotalRevenue: fptr(400_000)},
			},
			fires: true,
		},
		{
			name: "40 percent drop does not fire",
			filings: []models.RawFiling{
				{TaxPeriod: 202206, TotalRevenue: fptr(1_000_000)},
				{TaxPeriod: 202306, TotalRevenue: fptr(600_000)},
			},
			fires: false,
		},
		{
			name: "zero previous revenue is skipped",
			filings: []models.RawFiling{
				{TaxPeriod: 202206, TotalRevenue: fptr(0)},
				{TaxPeriod: 202306, TotalRevenue: fptr(100)},
			},
			fires: false,
		},
		{
			name: "negative previous revenue is skipped",
			filings: []models.RawFiling{
				{TaxPeriod: 202206, TotalRevenue: fptr(-50_000)},
				{TaxPeriod: 202306, TotalRevenue: fptr(10_000)},
			},
			fires: false,
		},
		{
			name: "single filing never fires",
			filings: []models.RawFiling{
				{TaxPeriod: 202306, TotalRevenue: fptr(100)},
			},
			fires: false,
		},
		{
			name: "missing latest revenue is skipped",
			filings: []models.RawFiling{
				{TaxPeriod: 202206, TotalRevenue: fptr(1_000_000)},
				{TaxPeriod: 202306},
			},
			fires: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org := cleanOrg()
			_, ok := flagTypes(DetectRedFlags(org, tt.filings, cfg, recencyNow))[models.FlagRevenueDecline]
			if ok != tt.fires {
				t.Errorf("revenue-decline fired=%v, want %v", ok, tt.fires)
			}
		})
	}
}

func TestDetectRevenueDeclineUsesTwoMostRecent(t *testing.T) {
	// Unsorted input: the detector must order by period code itself.
	filings := []models.RawFiling{
		{TaxPeriod: 202306, TotalRevenue: fptr(400_000)},
		{TaxPeriod: 202006, TotalRevenue: fptr(50_000)},
		{TaxPeriod: 202206, TotalRevenue: fptr(1_000_000)},
	}
	flags := DetectRedFlags(cleanOrg(), filings, DefaultThresholds(), recencyNow)
	found := false
	for _, f := range flags {
		if f.Type == models.FlagRevenueDecline {
			found = true
		}
	}
	if !found {
		t.Error("decline between the two most recent filings should fire regardless of input order")
	}
}
