package rules

import (
	"fmt"
	"strings"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	"github.com/elC0mpa/cloud-cost-doctor/service/pricing"
)

const bytesPerGB = 1024 * 1024 * 1024

// storageRule inspects object-storage buckets: storage-class transitions,
// lifecycle policy coverage, noncurrent-version expiry and empty buckets.
// Savings for tier changes are annualized rate differentials, matching how
// storage billing is normally quoted.
type storageRule struct {
	settings Settings
}

// NewStorageRule builds the object-storage rule
func NewStorageRule(settings Settings) Rule {
	return &storageRule{settings: settings}
}

func (r *storageRule) Name() string {
	return "storage"
}

func (r *storageRule) Classify(in Input) []model.Recommendation {
	res := in.Resource
	if res.Kind != model.KindStorageBucket || in.Bucket == nil {
		return nil
	}
	meta := *in.Bucket

	// An empty bucket gets exactly one recommendation, regardless of size
	if count, ok := in.Utilization.Average(model.MetricObjectCount); ok && count == 0 {
		return []model.Recommendation{r.emptyBucket(res)}
	}

	sizeBytes, ok := in.Utilization.Average(model.MetricBucketSize)
	if !ok {
		return nil
	}
	if sizeBytes < float64(r.settings.MinBucketSizeMB)*1024*1024 {
		// too small to matter
		return nil
	}
	sizeGB := sizeBytes / bytesPerGB

	var recs []model.Recommendation

	if meta.LastAccessed != nil {
		days := int(in.Now.Sub(*meta.LastAccessed).Hours() / 24)
		if rec, ok := r.storageClassChange(res, sizeGB, days); ok {
			recs = append(recs, rec)
		}
	}

	if !meta.HasLifecyclePolicy {
		recs = append(recs, r.addLifecyclePolicy(res, sizeGB))
	} else if missing := r.missingTransitions(meta); len(missing) > 0 {
		recs = append(recs, r.completeLifecyclePolicy(res, sizeGB, missing))
	}

	if meta.VersioningEnabled && !meta.HasVersionExpiration() {
		recs = append(recs, r.versionExpiration(res, sizeGB))
	}

	return recs
}

// storageClassChange picks the deepest tier whose threshold is exceeded
func (r *storageRule) storageClassChange(res model.Resource, sizeGB float64, daysSinceAccess int) (model.Recommendation, bool) {
	var class string
	var rate float64

	switch {
	case daysSinceAccess > r.settings.DeepArchiveDays:
		class, rate = pricing.StorageClassDeepArchive, pricing.StorageRateDeepArchive
	case daysSinceAccess > r.settings.GlacierDays:
		class, rate = pricing.StorageClassGlacier, pricing.StorageRateGlacier
	case daysSinceAccess > r.settings.InfrequentAccessDays:
		class, rate = pricing.StorageClassIA, pricing.StorageRateIA
	default:
		return model.Recommendation{}, false
	}

	savings := sizeGB * (pricing.StorageRateStandard - rate) * 12

	return model.Recommendation{
		ResourceID:   res.ID,
		ResourceName: res.Name,
		Provider:     res.Provider,
		Region:       res.Region,
		Kind:         res.Kind,
		Type:         model.RecommendationStorageClass,
		State: model.StorageClassState{
			TargetClass:     class,
			SizeGB:          sizeGB,
			DaysSinceAccess: daysSinceAccess,
		},
		EstimatedMonthlySavings: savings,
		Confidence:              model.ConfidenceMedium,
		Details: fmt.Sprintf(
			"Bucket has not been accessed for %d days. Transition %.1f GB to %s.",
			daysSinceAccess, sizeGB, class),
	}, true
}

// blendedLifecycleSavings assumes 60%/30%/10% of the data eventually
// reaches IA, Glacier and Deep Archive under a full transition schedule
func blendedLifecycleSavings(sizeGB float64) float64 {
	ia := sizeGB * 0.6 * (pricing.StorageRateStandard - pricing.StorageRateIA)
	glacier := sizeGB * 0.3 * (pricing.StorageRateStandard - pricing.StorageRateGlacier)
	deep := sizeGB * 0.1 * (pricing.StorageRateStandard - pricing.StorageRateDeepArchive)
	return (ia + glacier + deep) * 12
}

func (r *storageRule) addLifecyclePolicy(res model.Resource, sizeGB float64) model.Recommendation {
	return model.Recommendation{
		ResourceID:   res.ID,
		ResourceName: res.Name,
		Provider:     res.Provider,
		Region:       res.Region,
		Kind:         res.Kind,
		Type:         model.RecommendationLifecyclePolicy,
		State: model.LifecyclePolicyState{
			HasPolicy: "none",
			SizeGB:    sizeGB,
		},
		EstimatedMonthlySavings: blendedLifecycleSavings(sizeGB),
		Confidence:              model.ConfidenceMedium,
		Details: fmt.Sprintf(
			"No lifecycle policy found. Add transitions to %s after %d days, %s after %d days and %s after %d days.",
			pricing.StorageClassIA, r.settings.InfrequentAccessDays,
			pricing.StorageClassGlacier, r.settings.GlacierDays,
			pricing.StorageClassDeepArchive, r.settings.DeepArchiveDays),
	}
}

// completeLifecyclePolicy credits half the blended savings when a policy
// exists but misses one or more tier transitions
func (r *storageRule) completeLifecyclePolicy(res model.Resource, sizeGB float64, missing []string) model.Recommendation {
	return model.Recommendation{
		ResourceID:   res.ID,
		ResourceName: res.Name,
		Provider:     res.Provider,
		Region:       res.Region,
		Kind:         res.Kind,
		Type:         model.RecommendationLifecyclePolicy,
		State: model.LifecyclePolicyState{
			HasPolicy:          "partial",
			MissingTransitions: missing,
			SizeGB:             sizeGB,
		},
		EstimatedMonthlySavings: blendedLifecycleSavings(sizeGB) / 2,
		Confidence:              model.ConfidenceMedium,
		Details: fmt.Sprintf(
			"Lifecycle policy is missing transitions to %s.", strings.Join(missing, ", ")),
	}
}

// versionExpiration assumes versioning without expiry inflates storage by 50%
func (r *storageRule) versionExpiration(res model.Resource, sizeGB float64) model.Recommendation {
	savings := sizeGB * 0.5 * pricing.StorageRateStandard * 12

	return model.Recommendation{
		ResourceID:   res.ID,
		ResourceName: res.Name,
		Provider:     res.Provider,
		Region:       res.Region,
		Kind:         res.Kind,
		Type:         model.RecommendationLifecyclePolicy,
		State: model.LifecyclePolicyState{
			HasPolicy: "no-version-expiry",
			SizeGB:    sizeGB,
		},
		EstimatedMonthlySavings: savings,
		Confidence:              model.ConfidenceMedium,
		Details:                 "Versioning is enabled but old versions are never expired. Add a noncurrent version expiration rule.",
	}
}

func (r *storageRule) emptyBucket(res model.Resource) model.Recommendation {
	return model.Recommendation{
		ResourceID:              res.ID,
		ResourceName:            res.Name,
		Provider:                res.Provider,
		Region:                  res.Region,
		Kind:                    res.Kind,
		Type:                    model.RecommendationUnusedResource,
		State:                   model.UnusedResourceState{Reason: "empty bucket"},
		EstimatedMonthlySavings: pricing.EmptyBucketAnnualCost,
		Confidence:              model.ConfidenceHigh,
		Details:                 "Bucket contains no objects. Delete it if no longer needed.",
	}
}

func (r *storageRule) missingTransitions(meta model.BucketMetadata) []string {
	var missing []string
	for _, class := range []string{
		pricing.StorageClassIA,
		pricing.StorageClassGlacier,
		pricing.StorageClassDeepArchive,
	} {
		if !meta.HasTransitionTo(class) {
			missing = append(missing, class)
		}
	}
	return missing
}
