package model

import "time"

// LifecycleTransition is one storage-class transition in a lifecycle rule
type LifecycleTransition struct {
	Days         int
	StorageClass string
}

// LifecycleRule mirrors the subset of a bucket lifecycle rule the
// classification rules care about
type LifecycleRule struct {
	Transitions                 []LifecycleTransition
	NoncurrentVersionExpiration bool
}

// BucketMetadata carries the storage-only inputs: size/access metrics come
// from the metrics collector, lifecycle and versioning from the storage API.
type BucketMetadata struct {
	HasLifecyclePolicy bool
	Rules              []LifecycleRule
	VersioningEnabled  bool
	LastAccessed       *time.Time
	CreationDate       time.Time
}

// HasTransitionTo reports whether any lifecycle rule transitions to the
// given storage class
func (b BucketMetadata) HasTransitionTo(class string) bool {
	for _, rule := range b.Rules {
		for _, t := range rule.Transitions {
			if t.StorageClass == class {
				return true
			}
		}
	}
	return false
}

// HasVersionExpiration reports whether any rule expires noncurrent versions
func (b BucketMetadata) HasVersionExpiration() bool {
	for _, rule := range b.Rules {
		if rule.NoncurrentVersionExpiration {
			return true
		}
	}
	return false
}
