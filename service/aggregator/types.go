package aggregator

import (
	"github.com/elC0mpa/cloud-cost-doctor/model"
)

// SavingsByType is a per-recommendation-type savings rollup used by the
// report renderers
type SavingsByType map[model.RecommendationType]float64

// Summary rolls a ranked recommendation list up into totals
type Summary struct {
	Recommendations []model.Recommendation
	TotalMonthly    float64
	ByType          SavingsByType
}
