package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	"github.com/elC0mpa/cloud-cost-doctor/service/pricing"
)

func testCalculator() *pricing.Calculator {
	return pricing.NewCalculator(pricing.NewStaticCatalog(), 0)
}

func runningInstance(size string) model.Resource {
	return model.Resource{
		ID:       "i-0abc",
		Name:     "api-server",
		Kind:     model.KindComputeInstance,
		Provider: model.ProviderAWS,
		Region:   "us-east-1",
		Size:     size,
		State:    model.StateRunning,
	}
}

func TestUnderutilizationRule(t *testing.T) {
	rule := NewUnderutilizationRule(DefaultSettings(), testCalculator(), zap.NewNop())
	now := time.Now()

	tests := []struct {
		name       string
		cpu        float64
		hasMetric  bool
		wantFire   bool
		confidence model.Confidence
	}{
		{name: "below threshold", cpu: 3.0, hasMetric: true, wantFire: true, confidence: model.ConfidenceMedium},
		{name: "well below threshold", cpu: 1.9, hasMetric: true, wantFire: true, confidence: model.ConfidenceHigh},
		{name: "exactly at threshold", cpu: 5.0, hasMetric: true, wantFire: false},
		{name: "above threshold", cpu: 42.0, hasMetric: true, wantFire: false},
		{name: "no metric data", hasMetric: false, wantFire: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Resource: runningInstance("t3.xlarge"), Now: now}
			if tt.hasMetric {
				in.Utilization = model.UtilizationSummary{model.MetricCPUUtilization: tt.cpu}
			}

			recs := rule.Classify(in)
			if !tt.wantFire {
				assert.Empty(t, recs)
				return
			}

			require.Len(t, recs, 1)
			rec := recs[0]
			assert.Equal(t, model.RecommendationRightsize, rec.Type)
			assert.Equal(t, tt.confidence, rec.Confidence)
			assert.InDelta(t, (0.1664-0.0832)*pricing.MonthlyHours, rec.EstimatedMonthlySavings, 1e-9)

			state, ok := rec.State.(model.RightsizeState)
			require.True(t, ok)
			assert.Equal(t, "t3.xlarge", state.CurrentSize)
			assert.Equal(t, "t3.large", state.TargetSize)
		})
	}
}

func TestUnderutilizationRuleSkipsNonDowngradableSizes(t *testing.T) {
	rule := NewUnderutilizationRule(DefaultSettings(), testCalculator(), zap.NewNop())

	in := Input{
		Resource:    runningInstance("t3.nano"),
		Utilization: model.UtilizationSummary{model.MetricCPUUtilization: 1.0},
		Now:         time.Now(),
	}
	assert.Empty(t, rule.Classify(in))
}

func TestUnderutilizationRuleIgnoresStoppedAndForeignKinds(t *testing.T) {
	rule := NewUnderutilizationRule(DefaultSettings(), testCalculator(), zap.NewNop())
	util := model.UtilizationSummary{model.MetricCPUUtilization: 1.0}

	stopped := runningInstance("t3.xlarge")
	stopped.State = model.StateStopped
	assert.Empty(t, rule.Classify(Input{Resource: stopped, Utilization: util, Now: time.Now()}))

	bucket := runningInstance("t3.xlarge")
	bucket.Kind = model.KindStorageBucket
	assert.Empty(t, rule.Classify(Input{Resource: bucket, Utilization: util, Now: time.Now()}))
}

func TestIdleRule(t *testing.T) {
	rule := NewIdleRule(testCalculator(), zap.NewNop())
	now := time.Now()

	tests := []struct {
		name       string
		cpu        float64
		hasMetric  bool
		wantFire   bool
		confidence model.Confidence
	}{
		{name: "idle", cpu: 0.8, hasMetric: true, wantFire: true, confidence: model.ConfidenceMedium},
		{name: "nearly zero", cpu: 0.2, hasMetric: true, wantFire: true, confidence: model.ConfidenceHigh},
		{name: "exactly at threshold", cpu: 1.0, hasMetric: true, wantFire: false},
		{name: "busy", cpu: 35.0, hasMetric: true, wantFire: false},
		{name: "no metric data", hasMetric: false, wantFire: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Resource: runningInstance("t3.large"), Now: now}
			if tt.hasMetric {
				in.Utilization = model.UtilizationSummary{model.MetricCPUUtilization: tt.cpu}
			}

			recs := rule.Classify(in)
			if !tt.wantFire {
				assert.Empty(t, recs)
				return
			}

			require.Len(t, recs, 1)
			assert.Equal(t, model.RecommendationTerminateIdle, recs[0].Type)
			assert.Equal(t, tt.confidence, recs[0].Confidence)
			// full monthly cost of the running size
			assert.InDelta(t, 0.0832*pricing.MonthlyHours, recs[0].EstimatedMonthlySavings, 1e-9)
		})
	}
}

func TestIdleAndRightsizeBothFire(t *testing.T) {
	settings := DefaultSettings()
	calc := testCalculator()
	ruleset := []Rule{
		NewUnderutilizationRule(settings, calc, zap.NewNop()),
		NewIdleRule(calc, zap.NewNop()),
	}

	inv := model.Inventory{
		Resources: []model.Resource{runningInstance("t3.xlarge")},
		Utilization: map[string]model.UtilizationSummary{
			"i-0abc": {model.MetricCPUUtilization: 0.4},
		},
	}

	recs := Evaluate(ruleset, inv, time.Now())
	require.Len(t, recs, 2)

	types := []model.RecommendationType{recs[0].Type, recs[1].Type}
	assert.Contains(t, types, model.RecommendationRightsize)
	assert.Contains(t, types, model.RecommendationTerminateIdle)
}

func TestUnderutilizationRuleThresholdMonotonicity(t *testing.T) {
	calc := testCalculator()
	strict := DefaultSettings()
	strict.MinCPUUtilization = 2.5
	lenient := DefaultSettings()
	lenient.MinCPUUtilization = 5.0

	strictRule := NewUnderutilizationRule(strict, calc, zap.NewNop())
	lenientRule := NewUnderutilizationRule(lenient, calc, zap.NewNop())
	now := time.Now()

	// Lowering the threshold can only shrink the firing set, never grow it.
	for _, cpu := range []float64{0.5, 1.9, 2.4, 2.5, 3.0, 4.9, 5.0, 6.0} {
		in := Input{
			Resource:    runningInstance("t3.xlarge"),
			Utilization: model.UtilizationSummary{model.MetricCPUUtilization: cpu},
			Now:         now,
		}
		firesStrict := len(strictRule.Classify(in)) > 0
		firesLenient := len(lenientRule.Classify(in)) > 0
		if firesStrict {
			assert.True(t, firesLenient, "cpu %.1f fired at threshold 2.5 but not at 5.0", cpu)
		}
	}
}

func TestIdleRuleDatabaseConnections(t *testing.T) {
	rule := NewIdleRule(testCalculator(), zap.NewNop())
	now := time.Now()

	database := model.Resource{
		ID:       "db-orders",
		Name:     "orders",
		Kind:     model.KindManagedDatabase,
		Provider: model.ProviderAWS,
		Region:   "us-east-1",
		Size:     "db.t3.micro",
		State:    model.StateRunning,
	}

	tests := []struct {
		name     string
		util     model.UtilizationSummary
		wantFire bool
	}{
		{
			name: "low cpu but serving connections",
			util: model.UtilizationSummary{
				model.MetricCPUUtilization: 0.4,
				model.MetricConnections:    3.0,
			},
			wantFire: false,
		},
		{
			name: "low cpu and zero connections",
			util: model.UtilizationSummary{
				model.MetricCPUUtilization: 0.4,
				model.MetricConnections:    0.0,
			},
			wantFire: true,
		},
		{
			name: "low cpu and no connection metric",
			util: model.UtilizationSummary{
				model.MetricCPUUtilization: 0.4,
			},
			wantFire: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := rule.Classify(Input{Resource: database, Utilization: tt.util, Now: now})
			if !tt.wantFire {
				assert.Empty(t, recs)
				return
			}
			require.Len(t, recs, 1)
			assert.Equal(t, model.RecommendationTerminateIdle, recs[0].Type)
		})
	}
}

func testBucket() model.Resource {
	return model.Resource{
		ID:       "logs-bucket",
		Name:     "logs-bucket",
		Kind:     model.KindStorageBucket,
		Provider: model.ProviderAWS,
		Region:   "us-east-1",
		State:    model.StateAvailable,
	}
}

func bucketUtilization(sizeGB, objects float64) model.UtilizationSummary {
	return model.UtilizationSummary{
		model.MetricBucketSize:  sizeGB * bytesPerGB,
		model.MetricObjectCount: objects,
	}
}

func TestStorageRuleClassChange(t *testing.T) {
	rule := NewStorageRule(DefaultSettings())
	now := time.Now()

	fullPolicy := model.BucketMetadata{
		HasLifecyclePolicy: true,
		Rules: []model.LifecycleRule{{
			Transitions: []model.LifecycleTransition{
				{Days: 30, StorageClass: pricing.StorageClassIA},
				{Days: 90, StorageClass: pricing.StorageClassGlacier},
				{Days: 180, StorageClass: pricing.StorageClassDeepArchive},
			},
		}},
	}

	tests := []struct {
		name      string
		daysAgo   int
		wantClass string
		wantRate  float64
	}{
		{name: "deep archive past 180 days", daysAgo: 200, wantClass: pricing.StorageClassDeepArchive, wantRate: pricing.StorageRateDeepArchive},
		{name: "glacier past 90 days", daysAgo: 120, wantClass: pricing.StorageClassGlacier, wantRate: pricing.StorageRateGlacier},
		{name: "ia past 30 days", daysAgo: 45, wantClass: pricing.StorageClassIA, wantRate: pricing.StorageRateIA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accessed := now.AddDate(0, 0, -tt.daysAgo)
			meta := fullPolicy
			meta.LastAccessed = &accessed

			in := Input{
				Resource:    testBucket(),
				Utilization: bucketUtilization(100, 5000),
				Bucket:      &meta,
				Now:         now,
			}

			recs := rule.Classify(in)
			require.Len(t, recs, 1)
			rec := recs[0]
			assert.Equal(t, model.RecommendationStorageClass, rec.Type)

			state, ok := rec.State.(model.StorageClassState)
			require.True(t, ok)
			assert.Equal(t, tt.wantClass, state.TargetClass)
			assert.InDelta(t, 100*(pricing.StorageRateStandard-tt.wantRate)*12, rec.EstimatedMonthlySavings, 1e-6)
		})
	}
}

func TestStorageRuleRecentAccessNoClassChange(t *testing.T) {
	rule := NewStorageRule(DefaultSettings())
	now := time.Now()
	accessed := now.AddDate(0, 0, -10)

	meta := model.BucketMetadata{
		HasLifecyclePolicy: true,
		Rules: []model.LifecycleRule{{
			Transitions: []model.LifecycleTransition{
				{Days: 30, StorageClass: pricing.StorageClassIA},
				{Days: 90, StorageClass: pricing.StorageClassGlacier},
				{Days: 180, StorageClass: pricing.StorageClassDeepArchive},
			},
		}},
		LastAccessed: &accessed,
	}

	in := Input{
		Resource:    testBucket(),
		Utilization: bucketUtilization(100, 5000),
		Bucket:      &meta,
		Now:         now,
	}
	assert.Empty(t, rule.Classify(in))
}

func TestStorageRuleLifecyclePolicy(t *testing.T) {
	rule := NewStorageRule(DefaultSettings())
	now := time.Now()

	t.Run("missing policy gets blended savings", func(t *testing.T) {
		meta := model.BucketMetadata{}
		in := Input{
			Resource:    testBucket(),
			Utilization: bucketUtilization(100, 5000),
			Bucket:      &meta,
			Now:         now,
		}

		recs := rule.Classify(in)
		require.Len(t, recs, 1)
		rec := recs[0]
		assert.Equal(t, model.RecommendationLifecyclePolicy, rec.Type)

		state, ok := rec.State.(model.LifecyclePolicyState)
		require.True(t, ok)
		assert.Equal(t, "none", state.HasPolicy)

		ia := 100 * 0.6 * (pricing.StorageRateStandard - pricing.StorageRateIA)
		glacier := 100 * 0.3 * (pricing.StorageRateStandard - pricing.StorageRateGlacier)
		deep := 100 * 0.1 * (pricing.StorageRateStandard - pricing.StorageRateDeepArchive)
		assert.InDelta(t, (ia+glacier+deep)*12, rec.EstimatedMonthlySavings, 1e-6)
	})

	t.Run("partial policy gets half savings", func(t *testing.T) {
		meta := model.BucketMetadata{
			HasLifecyclePolicy: true,
			Rules: []model.LifecycleRule{{
				Transitions: []model.LifecycleTransition{
					{Days: 30, StorageClass: pricing.StorageClassIA},
				},
			}},
		}
		in := Input{
			Resource:    testBucket(),
			Utilization: bucketUtilization(100, 5000),
			Bucket:      &meta,
			Now:         now,
		}

		recs := rule.Classify(in)
		require.Len(t, recs, 1)

		state, ok := recs[0].State.(model.LifecyclePolicyState)
		require.True(t, ok)
		assert.Equal(t, "partial", state.HasPolicy)
		assert.Equal(t, []string{pricing.StorageClassGlacier, pricing.StorageClassDeepArchive}, state.MissingTransitions)

		full := blendedLifecycleSavings(100)
		assert.InDelta(t, full/2, recs[0].EstimatedMonthlySavings, 1e-6)
	})

	t.Run("versioning without expiry", func(t *testing.T) {
		meta := model.BucketMetadata{
			HasLifecyclePolicy: true,
			Rules: []model.LifecycleRule{{
				Transitions: []model.LifecycleTransition{
					{Days: 30, StorageClass: pricing.StorageClassIA},
					{Days: 90, StorageClass: pricing.StorageClassGlacier},
					{Days: 180, StorageClass: pricing.StorageClassDeepArchive},
				},
			}},
			VersioningEnabled: true,
		}
		in := Input{
			Resource:    testBucket(),
			Utilization: bucketUtilization(100, 5000),
			Bucket:      &meta,
			Now:         now,
		}

		recs := rule.Classify(in)
		require.Len(t, recs, 1)

		state, ok := recs[0].State.(model.LifecyclePolicyState)
		require.True(t, ok)
		assert.Equal(t, "no-version-expiry", state.HasPolicy)
		assert.InDelta(t, 100*0.5*pricing.StorageRateStandard*12, recs[0].EstimatedMonthlySavings, 1e-6)
	})
}

func TestStorageRuleEmptyBucket(t *testing.T) {
	rule := NewStorageRule(DefaultSettings())

	// Empty buckets win over every other storage check, even without a policy
	in := Input{
		Resource:    testBucket(),
		Utilization: bucketUtilization(0, 0),
		Bucket:      &model.BucketMetadata{},
		Now:         time.Now(),
	}

	recs := rule.Classify(in)
	require.Len(t, recs, 1)
	assert.Equal(t, model.RecommendationUnusedResource, recs[0].Type)
	assert.Equal(t, model.ConfidenceHigh, recs[0].Confidence)
	assert.InDelta(t, pricing.EmptyBucketAnnualCost, recs[0].EstimatedMonthlySavings, 1e-9)
}

func TestStorageRuleMinimumSizeFloor(t *testing.T) {
	rule := NewStorageRule(DefaultSettings())

	// 64 MB is below the 128 MB floor
	in := Input{
		Resource: testBucket(),
		Utilization: model.UtilizationSummary{
			model.MetricBucketSize:  64 * 1024 * 1024,
			model.MetricObjectCount: 12,
		},
		Bucket: &model.BucketMetadata{},
		Now:    time.Now(),
	}
	assert.Empty(t, rule.Classify(in))
}

func TestStorageRuleNoMetricsNoFire(t *testing.T) {
	rule := NewStorageRule(DefaultSettings())

	in := Input{
		Resource: testBucket(),
		Bucket:   &model.BucketMetadata{},
		Now:      time.Now(),
	}
	assert.Empty(t, rule.Classify(in))
}

func TestUnusedResourceRule(t *testing.T) {
	rule := NewUnusedResourceRule()
	now := time.Now()

	t.Run("unattached volume", func(t *testing.T) {
		res := model.Resource{
			ID:       "vol-1",
			Kind:     model.KindBlockVolume,
			Provider: model.ProviderAWS,
			State:    model.StateAvailable,
			SizeGB:   100,
		}
		recs := rule.Classify(Input{Resource: res, Now: now})
		require.Len(t, recs, 1)
		assert.Equal(t, model.RecommendationUnusedResource, recs[0].Type)
		assert.InDelta(t, 100*pricing.VolumeRateGBMonth, recs[0].EstimatedMonthlySavings, 1e-9)
	})

	t.Run("attached volume is ignored", func(t *testing.T) {
		res := model.Resource{
			ID:     "vol-2",
			Kind:   model.KindBlockVolume,
			State:  model.StateOther,
			SizeGB: 100,
		}
		assert.Empty(t, rule.Classify(Input{Resource: res, Now: now}))
	})

	t.Run("unassociated public IP", func(t *testing.T) {
		res := model.Resource{
			ID:    "eip-1",
			Kind:  model.KindPublicIP,
			State: model.StateAvailable,
		}
		recs := rule.Classify(Input{Resource: res, Now: now})
		require.Len(t, recs, 1)
		assert.InDelta(t, pricing.PublicIPMonthlyCost, recs[0].EstimatedMonthlySavings, 1e-9)
	})

	t.Run("orphaned load balancer", func(t *testing.T) {
		res := model.Resource{
			ID:    "alb-1",
			Kind:  model.KindLoadBalancer,
			State: model.StateAvailable,
		}
		recs := rule.Classify(Input{Resource: res, Now: now})
		require.Len(t, recs, 1)
		assert.InDelta(t, pricing.LoadBalancerMonthlyCost, recs[0].EstimatedMonthlySavings, 1e-9)
	})

	t.Run("long stopped instance", func(t *testing.T) {
		since := now.AddDate(0, 0, -45)
		res := model.Resource{
			ID:         "i-stopped",
			Kind:       model.KindComputeInstance,
			State:      model.StateStopped,
			StateSince: &since,
			SizeGB:     30,
		}
		recs := rule.Classify(Input{Resource: res, Now: now})
		require.Len(t, recs, 1)
		assert.InDelta(t, 30*pricing.VolumeRateGBMonth, recs[0].EstimatedMonthlySavings, 1e-9)
	})

	t.Run("recently stopped instance is ignored", func(t *testing.T) {
		since := now.AddDate(0, 0, -5)
		res := model.Resource{
			ID:         "i-fresh",
			Kind:       model.KindComputeInstance,
			State:      model.StateStopped,
			StateSince: &since,
		}
		assert.Empty(t, rule.Classify(Input{Resource: res, Now: now}))
	})

	t.Run("stopped instance without timestamp is ignored", func(t *testing.T) {
		res := model.Resource{
			ID:    "i-unknown",
			Kind:  model.KindComputeInstance,
			State: model.StateStopped,
		}
		assert.Empty(t, rule.Classify(Input{Resource: res, Now: now}))
	})
}

func TestEvaluateRunsAllRulesOverInventory(t *testing.T) {
	ruleset := DefaultRules(DefaultSettings(), testCalculator(), zap.NewNop())
	now := time.Now()

	since := now.AddDate(0, 0, -60)
	inv := model.Inventory{
		Provider: model.ProviderAWS,
		Region:   "us-east-1",
		Resources: []model.Resource{
			runningInstance("t3.xlarge"),
			{ID: "vol-9", Kind: model.KindBlockVolume, State: model.StateAvailable, SizeGB: 50},
			{ID: "i-old", Kind: model.KindComputeInstance, State: model.StateStopped, StateSince: &since, SizeGB: 20},
		},
		Utilization: map[string]model.UtilizationSummary{
			"i-0abc": {model.MetricCPUUtilization: 3.0},
		},
	}

	recs := Evaluate(ruleset, inv, now)
	require.Len(t, recs, 3)

	byID := map[string]model.RecommendationType{}
	for _, rec := range recs {
		byID[rec.ResourceID] = rec.Type
	}
	assert.Equal(t, model.RecommendationRightsize, byID["i-0abc"])
	assert.Equal(t, model.RecommendationUnusedResource, byID["vol-9"])
	assert.Equal(t, model.RecommendationUnusedResource, byID["i-old"])
}
