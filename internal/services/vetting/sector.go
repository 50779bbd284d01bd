package vetting

import (
	"fmt"
	"sort"
)

// SectorOverride is a partial threshold delta keyed by NTEE major group
// letter. Nil fields keep the base value. Entries are data, not logic;
// every merged result must pass Validate at process start.
type SectorOverride struct {
	Weights *CheckWeights

	YearsReviewMin *int
	YearsPassMin   *int

	RevenueFailMin   *float64
	RevenuePassMin   *float64
	RevenuePassMax   *float64
	RevenueReviewMax *float64

	RatioLowReview  *float64
	RatioPassMin    *float64
	RatioPassMax    *float64
	RatioHighReview *float64

	Filing990PassMax   *int
	Filing990ReviewMax *int

	RedFlagVeryLowRevenue *float64
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// sectorOverrides adjusts thresholds for NTEE major groups where the base
// bands are a poor fit. Arts and human-services organizations run smaller
// budgets; hospitals and universities run far larger ones.
var sectorOverrides = map[byte]SectorOverride{
	// A: Arts, Culture & Humanities. Small-budget sector.
	'A': {
		RevenueFailMin:        floatPtr(25_000),
		RevenuePassMin:        floatPtr(50_000),
		RedFlagVeryLowRevenue: floatPtr(10_000),
	},
	// B: Education. Tolerate endowment-driven low expense ratios.
	'B': {
		RatioLowReview: floatPtr(0.40),
		RatioPassMin:   floatPtr(0.60),
	},
	// E: Health Care. Larger revenue bands for hospital systems.
	'E': {
		RevenuePassMax:   floatPtr(100_000_000),
		RevenueReviewMax: floatPtr(500_000_000),
	},
	// P: Human Services. Small-budget sector, younger organizations common.
	'P': {
		RevenueFailMin: floatPtr(25_000),
		RevenuePassMin: floatPtr(75_000),
		YearsPassMin:   intPtr(2),
	},
	// X: Religion-Related. Wider acceptable ratio bands.
	'X': {
		RatioPassMin:    floatPtr(0.60),
		RatioHighReview: floatPtr(1.40),
	},
}

// ResolveSector returns base with the override for the NTEE major group
// merged on top. Unknown or empty codes return base unchanged. The base
// value is never mutated.
func ResolveSector(base Thresholds, nteeCode string) Thresholds {
	if nteeCode == "" {
		return base
	}
	group := nteeCode[0]
	if group >= 'a' && group <= 'z' {
		group -= 'a' - 'A'
	}
	ov, ok := sectorOverrides[group]
	if !ok {
		return base
	}
	return applyOverride(base, ov)
}

func applyOverride(base Thresholds, ov SectorOverride) Thresholds {
	out := base
	if ov.Weights != nil {
		out.Weights = *ov.Weights
	}
	if ov.YearsReviewMin != nil {
		out.YearsReviewMin = *ov.YearsReviewMin
	}
	if ov.YearsPassMin != nil {
		out.YearsPassMin = *ov.YearsPassMin
	}
	if ov.RevenueFailMin != nil {
		out.RevenueFailMin = *ov.RevenueFailMin
	}
	if ov.RevenuePassMin != nil {
		out.RevenuePassMin = *ov.RevenuePassMin
	}
	if ov.RevenuePassMax != nil {
		out.RevenuePassMax = *ov.RevenuePassMax
	}
	if ov.RevenueReviewMax != nil {
		out.RevenueReviewMax = *ov.RevenueReviewMax
	}
	if ov.RatioLowReview != nil {
		out.RatioLowReview = *ov.RatioLowReview
	}
	if ov.RatioPassMin != nil {
		out.RatioPassMin = *ov.RatioPassMin
	}
	if ov.RatioPassMax != nil {
		out.RatioPassMax = *ov.RatioPassMax
	}
	if ov.RatioHighReview != nil {
		out.RatioHighReview = *ov.RatioHighReview
	}
	if ov.Filing990PassMax != nil {
		out.Filing990PassMax = *ov.Filing990PassMax
	}
	if ov.Filing990ReviewMax != nil {
		out.Filing990ReviewMax = *ov.Filing990ReviewMax
	}
	if ov.RedFlagVeryLowRevenue != nil {
		out.RedFlagVeryLowRevenue = *ov.RedFlagVeryLowRevenue
	}
	return out
}

// ValidateSectorOverrides merges every static override onto base and
// validates the result. An invalid entry is a startup fatal, never a
// per-request error.
func ValidateSectorOverrides(base Thresholds) error {
	groups := make([]byte, 0, len(sectorOverrides))
	for g := range sectorOverrides {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })

	for _, g := range groups {
		merged := applyOverride(base, sectorOverrides[g])
		if err := merged.Validate(); err != nil {
			return fmt.Errorf("sector override %q: %w", string(g), err)
		}
	}
	return nil
}
