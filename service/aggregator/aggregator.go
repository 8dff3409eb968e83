package aggregator

import (
	"sort"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

// Aggregate merges recommendation batches into a single list ranked by
// estimated savings, highest first. The sort is stable so equal-savings
// entries keep their arrival order, and a second call over the result is
// a no-op.
func Aggregate(batches ...[]model.Recommendation) []model.Recommendation {
	var merged []model.Recommendation
	for _, batch := range batches {
		merged = append(merged, batch...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].EstimatedMonthlySavings > merged[j].EstimatedMonthlySavings
	})
	return merged
}

// Summarize ranks the batches and computes the savings totals the
// renderers print
func Summarize(batches ...[]model.Recommendation) Summary {
	ranked := Aggregate(batches...)
	summary := Summary{
		Recommendations: ranked,
		ByType:          make(SavingsByType),
	}
	for _, rec := range ranked {
		summary.TotalMonthly += rec.EstimatedMonthlySavings
		summary.ByType[rec.Type] += rec.EstimatedMonthlySavings
	}
	return summary
}
