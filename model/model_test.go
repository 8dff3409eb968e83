package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUtilizationSummaryAverage(t *testing.T) {
	summary := UtilizationSummary{MetricCPUUtilization: 0.0}

	// An observed zero is evidence; a missing metric is not
	v, ok := summary.Average(MetricCPUUtilization)
	assert.True(t, ok)
	assert.Zero(t, v)

	_, ok = summary.Average(MetricBucketSize)
	assert.False(t, ok)

	var nilSummary UtilizationSummary
	_, ok = nilSummary.Average(MetricCPUUtilization)
	assert.False(t, ok)
}

func TestResourceUptimeHours(t *testing.T) {
	now := time.Now()
	launched := now.Add(-48 * time.Hour)

	res := Resource{LaunchTime: &launched}
	assert.InDelta(t, 48.0, res.UptimeHours(now), 1e-6)

	assert.Zero(t, Resource{}.UptimeHours(now))
}

func TestBucketMetadataTransitions(t *testing.T) {
	meta := BucketMetadata{
		Rules: []LifecycleRule{
			{Transitions: []LifecycleTransition{{Days: 30, StorageClass: "STANDARD_IA"}}},
			{NoncurrentVersionExpiration: true},
		},
	}

	assert.True(t, meta.HasTransitionTo("STANDARD_IA"))
	assert.False(t, meta.HasTransitionTo("GLACIER"))
	assert.True(t, meta.HasVersionExpiration())

	assert.False(t, BucketMetadata{}.HasTransitionTo("STANDARD_IA"))
	assert.False(t, BucketMetadata{}.HasVersionExpiration())
}

func TestInventoryMerge(t *testing.T) {
	base := Inventory{
		Resources:   []Resource{{ID: "a"}},
		Utilization: map[string]UtilizationSummary{"a": {MetricCPUUtilization: 10}},
	}
	other := Inventory{
		Resources:   []Resource{{ID: "b"}},
		Utilization: map[string]UtilizationSummary{"b": {MetricCPUUtilization: 20}},
		Buckets:     map[string]BucketMetadata{"b": {VersioningEnabled: true}},
	}

	base.Merge(other)

	assert.Len(t, base.Resources, 2)
	assert.Len(t, base.Utilization, 2)
	assert.True(t, base.Buckets["b"].VersioningEnabled)
}
