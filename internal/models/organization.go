package models

import "time"

// Organization is the normalized view of one legal entity as returned by the
// data provider. It is built once per request and never mutated afterward.
type Organization struct {
	EIN            string         `json:"ein"`  // canonical "NN-NNNNNNN" form
	Name           string         `json:"name"`
	City           string         `json:"city,omitempty"`
	State          string         `json:"state,omitempty"`
	RulingDate     *time.Time     `json:"ruling_date,omitempty"`
	YearsOperating *int           `json:"years_operating,omitempty"` // nil when ruling date is unknown; negative is preserved
	Subsection     string         `json:"subsection"` // two-character IRS subsection code, "" when unknown
	NTEECode       string         `json:"ntee_code,omitempty"`
	LatestFiling   *FilingSummary `json:"latest_filing,omitempty"`
	FilingCount    int            `json:"filing_count"` // zero is meaningful: no filings on record
}

// FilingSummary holds derived facts about the most recent tax filing.
// ExpenseRatio is expenses divided by revenue for that filing. It is NOT an
// administrative-overhead metric; nil means "not computable", never zero.
type FilingSummary struct {
	TaxPeriod      string   `json:"tax_period"` // raw period code, may be malformed
	TaxYear        int      `json:"tax_year"`
	FormType       string   `json:"form_type,omitempty"`
	TotalRevenue   *float64 `json:"total_revenue,omitempty"`
	TotalExpenses  *float64 `json:"total_expenses,omitempty"`
	TotalAssets    *float64 `json:"total_assets,omitempty"`
	TotalLiability *float64 `json:"total_liabilities,omitempty"`
	ExpenseRatio   *float64 `json:"expense_ratio,omitempty"`
	ProgramRevenue *float64 `json:"program_revenue,omitempty"`
	Contributions  *float64 `json:"contributions,omitempty"`
}

// RawFiling is one historical tax filing as obtained from the data source.
// The full list is used for trend detection (revenue decline); the filing
// with the greatest period code becomes the FilingSummary.
type RawFiling struct {
	TaxPeriod     int      `json:"tax_period"` // encodes year and month, e.g. 202306
	TotalRevenue  *float64 `json:"total_revenue,omitempty"`
	TotalExpenses *float64 `json:"total_expenses,omitempty"`
	TotalAssets   *float64 `json:"total_assets,omitempty"`
	Contributions *float64 `json:"contributions,omitempty"`
}
