package propublica

import (
	"fmt"
	"strconv"
	"strings"
)

// Raw wire shapes for the Nonprofit Explorer API v2. Fields we never read
// are omitted; unknown JSON keys are ignored by the decoder.

// flexInt decodes a JSON number or a numeric string. The provider is not
// consistent about which it emits for EINs and period codes.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q: %w", s, err)
	}
	*f = flexInt(n)
	return nil
}

type organizationResponse struct {
	Organization    rawOrganization `json:"organization"`
	FilingsWithData []rawFiling     `json:"filings_with_data"`
}

type rawOrganization struct {
	EIN            flexInt `json:"ein"`
	Name           string `json:"name"`
	City           string `json:"city"`
	State          string `json:"state"`
	SubsectionCode *int   `json:"subsection_code"`
	Subseccd       *int   `json:"subseccd"`
	RulingDate     string `json:"ruling_date"`
	NTEECode       string `json:"ntee_code"`
}

type rawFiling struct {
	TaxPeriod        flexInt  `json:"tax_prd"`
	FormType         *int     `json:"formtype"`
	TotalRevenue     *float64 `json:"totrevenue"`
	TotalExpenses    *float64 `json:"totfuncexpns"`
	TotalAssets      *float64 `json:"totassetsend"`
	TotalLiabilities *float64 `json:"totliabend"`
	Contributions    *float64 `json:"totcntrbgfts"`
	ProgramRevenue   *float64 `json:"totprgmrevnue"`
}

type searchResponse struct {
	TotalResults  int                     `json:"total_results"`
	Organizations []rawSearchOrganization `json:"organizations"`
}

type rawSearchOrganization struct {
	EIN      flexInt `json:"ein"`
	Name     string `json:"name"`
	City     string `json:"city"`
	State    string `json:"state"`
	Subseccd *int   `json:"subseccd"`
	NTEECode string `json:"ntee_code"`
}
