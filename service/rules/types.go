package rules

import (
	"time"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

// Settings carries every configurable threshold the rules consume. Rules
// never hardcode these; the caller builds Settings from its configuration.
type Settings struct {
	// MinCPUUtilization is the underutilization threshold in percent.
	// Utilization strictly below it makes a resource a rightsizing candidate.
	MinCPUUtilization float64

	// Storage tier thresholds in days since last access, strictly increasing
	InfrequentAccessDays int
	GlacierDays          int
	DeepArchiveDays      int

	// MinBucketSizeMB is the floor below which buckets are too small to matter
	MinBucketSizeMB int
}

// DefaultSettings returns the documented rule defaults
func DefaultSettings() Settings {
	return Settings{
		MinCPUUtilization:    5.0,
		InfrequentAccessDays: 30,
		GlacierDays:          90,
		DeepArchiveDays:      180,
		MinBucketSizeMB:      128,
	}
}

// Fixed rule constants: the idle threshold is deliberately independent of
// the configurable underutilization threshold, and the confidence cutoffs
// depend on how far below the threshold a metric sits.
const (
	idleThreshold           = 1.0
	highConfidenceCPU       = 2.0
	highConfidenceIdleCPU   = 0.5
	stoppedInstanceGraceDay = 30

	// activeConnectionsFloor is the average connection count at which a
	// database counts as serving traffic no matter how low its CPU sits
	activeConnectionsFloor = 1.0
)

// Input is everything a rule may inspect for one resource. Bucket is nil
// for non-storage resources. Now is injected so runs are reproducible.
type Input struct {
	Resource    model.Resource
	Utilization model.UtilizationSummary
	Bucket      *model.BucketMetadata
	Now         time.Time
}

// Rule is a pure classification function: zero or more recommendations,
// never an error. Missing or partial utilization data means the rule
// simply does not fire for that resource.
type Rule interface {
	Name() string
	Classify(in Input) []model.Recommendation
}
