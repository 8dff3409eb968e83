package reserved

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	"github.com/elC0mpa/cloud-cost-doctor/service/pricing"
)

func testGrouper() Grouper {
	calc := pricing.NewCalculator(pricing.NewStaticCatalog(), 0)
	return NewService(DefaultSettings(), calc, zap.NewNop())
}

func longRunning(id, size, region string) model.Resource {
	launched := time.Now().AddDate(0, -3, 0)
	return model.Resource{
		ID:         id,
		Name:       id,
		Kind:       model.KindComputeInstance,
		Provider:   model.ProviderAWS,
		Region:     region,
		Size:       size,
		State:      model.StateRunning,
		LaunchTime: &launched,
	}
}

func fleet(n int, size, region string) []model.Resource {
	resources := make([]model.Resource, 0, n)
	for i := 0; i < n; i++ {
		resources = append(resources, longRunning(fmt.Sprintf("i-%s-%d", size, i), size, region))
	}
	return resources
}

func TestGroupSingleResourceNoRecommendation(t *testing.T) {
	inv := model.Inventory{Resources: fleet(1, "m5.large", "us-east-1")}
	assert.Empty(t, testGrouper().Group(inv))
}

func TestGroupShortTermTier(t *testing.T) {
	inv := model.Inventory{Resources: fleet(2, "m5.large", "us-east-1")}

	recs := testGrouper().Group(inv)
	require.Len(t, recs, 1)
	rec := recs[0]

	assert.Equal(t, model.RecommendationReservedCapacity, rec.Type)
	assert.Equal(t, model.ConfidenceMedium, rec.Confidence)
	assert.Equal(t, "2 x m5.large", rec.ResourceName)

	state, ok := rec.State.(model.ReservedCapacityState)
	require.True(t, ok)
	assert.Equal(t, "1-year", state.Term)
	assert.Equal(t, 0.35, state.DiscountRate)
	assert.Equal(t, 2, state.Count)

	assert.InDelta(t, 2*0.096*pricing.MonthlyHours*0.35, rec.EstimatedMonthlySavings, 1e-6)
}

func TestGroupLongTermTier(t *testing.T) {
	inv := model.Inventory{Resources: fleet(5, "m5.large", "us-east-1")}

	recs := testGrouper().Group(inv)
	require.Len(t, recs, 1)

	state, ok := recs[0].State.(model.ReservedCapacityState)
	require.True(t, ok)
	assert.Equal(t, "3-year", state.Term)
	assert.Equal(t, 0.60, state.DiscountRate)

	// exactly at the long-term count is still Medium confidence
	assert.Equal(t, model.ConfidenceMedium, recs[0].Confidence)
	assert.InDelta(t, 5*0.096*pricing.MonthlyHours*0.60, recs[0].EstimatedMonthlySavings, 1e-6)
}

func TestGroupHighConfidenceAboveLongTermCount(t *testing.T) {
	inv := model.Inventory{Resources: fleet(6, "m5.large", "us-east-1")}

	recs := testGrouper().Group(inv)
	require.Len(t, recs, 1)
	assert.Equal(t, model.ConfidenceHigh, recs[0].Confidence)
}

func TestGroupUptimeGate(t *testing.T) {
	young := longRunning("i-young", "m5.large", "us-east-1")
	launched := time.Now().Add(-24 * time.Hour)
	young.LaunchTime = &launched

	noLaunch := longRunning("i-unknown", "m5.large", "us-east-1")
	noLaunch.LaunchTime = nil

	inv := model.Inventory{Resources: []model.Resource{
		longRunning("i-old", "m5.large", "us-east-1"),
		young,
		noLaunch,
	}}

	// Only one member clears the uptime gate, so no group forms
	assert.Empty(t, testGrouper().Group(inv))
}

func TestGroupSeparatesSizeAndRegion(t *testing.T) {
	var resources []model.Resource
	resources = append(resources, fleet(2, "m5.large", "us-east-1")...)
	resources = append(resources, fleet(2, "m5.large", "eu-west-1")...)
	resources = append(resources, fleet(2, "t3.large", "us-east-1")...)
	inv := model.Inventory{Resources: resources}

	recs := testGrouper().Group(inv)
	require.Len(t, recs, 3)

	// deterministic ordering: region then size
	assert.Equal(t, "eu-west-1", recs[0].Region)
	assert.Equal(t, "us-east-1", recs[1].Region)
	assert.Equal(t, "us-east-1", recs[2].Region)
}

func TestGroupSkipsStoppedAndSizelessResources(t *testing.T) {
	stopped := longRunning("i-stopped", "m5.large", "us-east-1")
	stopped.State = model.StateStopped

	sizeless := longRunning("i-sizeless", "", "us-east-1")

	inv := model.Inventory{Resources: []model.Resource{
		longRunning("i-ok", "m5.large", "us-east-1"),
		stopped,
		sizeless,
	}}

	assert.Empty(t, testGrouper().Group(inv))
}

func TestGroupUnpriceableSizesDropped(t *testing.T) {
	// Sizes the catalog and the estimator both reject contribute nothing
	inv := model.Inventory{Resources: fleet(2, "weird", "us-east-1")}
	assert.Empty(t, testGrouper().Group(inv))
}
