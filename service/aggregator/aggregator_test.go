package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func rec(id string, savings float64, recType model.RecommendationType) model.Recommendation {
	return model.Recommendation{
		ResourceID:              id,
		Type:                    recType,
		EstimatedMonthlySavings: savings,
	}
}

func TestAggregateRanksBySavings(t *testing.T) {
	ranked := Aggregate([]model.Recommendation{
		rec("a", 10, model.RecommendationRightsize),
		rec("b", 50, model.RecommendationTerminateIdle),
		rec("c", 5, model.RecommendationUnusedResource),
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].ResourceID)
	assert.Equal(t, "a", ranked[1].ResourceID)
	assert.Equal(t, "c", ranked[2].ResourceID)
}

func TestAggregateMergesBatches(t *testing.T) {
	ranked := Aggregate(
		[]model.Recommendation{rec("a", 10, model.RecommendationRightsize)},
		nil,
		[]model.Recommendation{rec("b", 20, model.RecommendationReservedCapacity)},
	)

	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].ResourceID)
	assert.Equal(t, "a", ranked[1].ResourceID)
}

func TestAggregateStableOnTies(t *testing.T) {
	ranked := Aggregate([]model.Recommendation{
		rec("first", 10, model.RecommendationRightsize),
		rec("second", 10, model.RecommendationRightsize),
		rec("third", 10, model.RecommendationRightsize),
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].ResourceID)
	assert.Equal(t, "second", ranked[1].ResourceID)
	assert.Equal(t, "third", ranked[2].ResourceID)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate())
	assert.Empty(t, Aggregate(nil, []model.Recommendation{}))
}

func TestAggregateIdempotent(t *testing.T) {
	input := []model.Recommendation{
		rec("a", 10, model.RecommendationRightsize),
		rec("b", 50, model.RecommendationTerminateIdle),
	}

	once := Aggregate(input)
	twice := Aggregate(once)
	assert.Equal(t, once, twice)
}

func TestSummarize(t *testing.T) {
	summary := Summarize(
		[]model.Recommendation{
			rec("a", 10, model.RecommendationRightsize),
			rec("b", 50, model.RecommendationTerminateIdle),
		},
		[]model.Recommendation{
			rec("c", 15, model.RecommendationRightsize),
		},
	)

	require.Len(t, summary.Recommendations, 3)
	assert.Equal(t, "b", summary.Recommendations[0].ResourceID)
	assert.InDelta(t, 75.0, summary.TotalMonthly, 1e-9)
	assert.InDelta(t, 25.0, summary.ByType[model.RecommendationRightsize], 1e-9)
	assert.InDelta(t, 50.0, summary.ByType[model.RecommendationTerminateIdle], 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize()
	assert.Empty(t, summary.Recommendations)
	assert.Zero(t, summary.TotalMonthly)
	assert.Empty(t, summary.ByType)
}
