package models

// CheckResult is the graded outcome of a single vetting check.
type CheckResult string

const (
	CheckPass   CheckResult = "pass"
	CheckReview CheckResult = "review"
	CheckFail   CheckResult = "fail"
)

// Recommendation is the final three-way verdict for an organization.
type Recommendation string

const (
	RecommendPass   Recommendation = "pass"
	RecommendReview Recommendation = "review"
	RecommendReject Recommendation = "reject"
)

// RedFlagType identifies an independently-triggered disqualifying or
// cautionary condition, separate from the five weighted checks.
type RedFlagType string

const (
	FlagNoFilings             RedFlagType = "no_filings"
	FlagNotTaxExempt          RedFlagType = "not_tax_exempt"
	FlagNoRulingDate          RedFlagType = "no_ruling_date"
	FlagTooNew                RedFlagType = "too_new"
	FlagStaleFiling           RedFlagType = "stale_filing"
	FlagUnsustainableSpending RedFlagType = "unsustainable_spending"
	FlagLowFundDeployment     RedFlagType = "low_fund_deployment"
	FlagVeryLowRevenue        RedFlagType = "very_low_revenue"
	FlagRevenueDecline        RedFlagType = "revenue_decline"
)

// Severity grades a red flag. Any high-severity flag forces a reject
// recommendation regardless of score.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// CheckOutcome is the result of one check evaluator.
type CheckOutcome struct {
	Name   string      `json:"name"`
	Passed bool        `json:"passed"` // true iff Result == CheckPass
	Result CheckResult `json:"result"`
	Detail string      `json:"detail"`
	Weight int         `json:"weight"` // points assigned by the active thresholds
}

// RedFlag is one detected cautionary or disqualifying condition.
type RedFlag struct {
	Type     RedFlagType `json:"type"`
	Severity Severity    `json:"severity"`
	Detail   string      `json:"detail"`
}

// Summary is the structured human-readable explanation of a verdict.
type Summary struct {
	Headline      string   `json:"headline"`
	Justification string   `json:"justification"`
	KeyFactors    []string `json:"key_factors"`
	NextSteps     []string `json:"next_steps"`
}

// EvaluationResult is the aggregate output of a Tier 1 evaluation.
// Constructed once per request; never mutated after return.
type EvaluationResult struct {
	RequestID      string         `json:"request_id"`
	EIN            string         `json:"ein"`
	Name           string         `json:"name"`
	Passed         bool           `json:"passed"` // true iff Recommendation == RecommendPass
	Score          int            `json:"score"`  // 0-100
	Summary        Summary        `json:"summary"`
	Checks         []CheckOutcome `json:"checks"` // fixed length 5, stable order
	Recommendation Recommendation `json:"recommendation"`
	ReviewReasons  []string       `json:"review_reasons"` // details of non-passing checks
	RedFlags       []RedFlag      `json:"red_flags"`
}

// RedFlagResult is the output of a red-flags-only scan.
type RedFlagResult struct {
	EIN      string    `json:"ein"`
	Name     string    `json:"name"`
	RedFlags []RedFlag `json:"red_flags"`
	AllClean bool      `json:"all_clean"`
}
