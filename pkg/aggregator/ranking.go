package aggregator

import (
	"math"
	"sort"

	"github.com/wayfarer/wayfarer/pkg/tdf"
)

// costEqualityBandUSD is the band within which two options count as
// cost-equal under the budget preference.
const costEqualityBandUSD = 1.0

// RankOptions deterministically reorders options in place according to the
// user's budget preference.
func RankOptions(options []tdf.TransportOption, budget tdf.BudgetPreference) {
	switch budget {
	case tdf.BudgetPreferenceBudget:
		sort.SliceStable(options, func(i, j int) bool {
			if math.Abs(options[i].EstimatedCostUSD-options[j].EstimatedCostUSD) < costEqualityBandUSD {
				return options[i].TotalDuration < options[j].TotalDuration
			}
			return options[i].EstimatedCostUSD < options[j].EstimatedCostUSD
		})
	case tdf.BudgetPreferencePremium:
		sort.SliceStable(options, func(i, j int) bool {
			return options[i].TotalDuration < options[j].TotalDuration
		})
	default:
		sort.SliceStable(options, func(i, j int) bool {
			return blendedScore(options[i]) < blendedScore(options[j])
		})
	}
}

func blendedScore(option tdf.TransportOption) float64 {
	return option.TotalDuration.Minutes() + option.EstimatedCostUSD*10
}
