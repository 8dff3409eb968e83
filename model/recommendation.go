package model

// RecommendationType tags the variant carried by a Recommendation
type RecommendationType string

const (
	RecommendationRightsize        RecommendationType = "Rightsize"
	RecommendationTerminateIdle    RecommendationType = "Terminate-Idle"
	RecommendationReservedCapacity RecommendationType = "Reserved-Capacity"
	RecommendationStorageClass     RecommendationType = "Storage-Class-Change"
	RecommendationLifecyclePolicy  RecommendationType = "Lifecycle-Policy"
	RecommendationUnusedResource   RecommendationType = "Unused-Resource"
)

// Confidence is a qualitative certainty label derived from how far a
// metric sits below its triggering threshold
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// State is the variant payload of a Recommendation. Exactly one concrete
// state type exists per RecommendationType, so rendering and tests can
// switch exhaustively instead of digging through untyped maps.
type State interface {
	recommendationState()
}

// RightsizeState proposes a one-step smaller size
type RightsizeState struct {
	CurrentSize    string
	TargetSize     string
	AvgUtilization float64
	Threshold      float64
}

// TerminateIdleState proposes terminating an idle resource
type TerminateIdleState struct {
	CurrentSize    string
	AvgUtilization float64
}

// ReservedCapacityState proposes a commitment purchase for a whole group
type ReservedCapacityState struct {
	Size         string
	Count        int
	Term         string // "1-year" or "3-year"
	DiscountRate float64
}

// StorageClassState proposes moving bucket data to a cheaper tier
type StorageClassState struct {
	TargetClass     string
	SizeGB          float64
	DaysSinceAccess int
}

// LifecyclePolicyState proposes adding or completing a lifecycle policy
type LifecyclePolicyState struct {
	HasPolicy          string // "none", "partial", "no-version-expiry"
	MissingTransitions []string
	SizeGB             float64
}

// UnusedResourceState proposes removing an unused resource
type UnusedResourceState struct {
	Reason string
	SizeGB float64
}

func (RightsizeState) recommendationState()        {}
func (TerminateIdleState) recommendationState()    {}
func (ReservedCapacityState) recommendationState() {}
func (StorageClassState) recommendationState()     {}
func (LifecyclePolicyState) recommendationState()  {}
func (UnusedResourceState) recommendationState()   {}

// Recommendation is the engine's output unit. Created by exactly one rule
// (or the reserved-capacity grouper) per triggering condition and never
// mutated afterwards.
type Recommendation struct {
	ResourceID              string
	ResourceName            string
	Provider                Provider
	Region                  string
	Kind                    ResourceKind
	Type                    RecommendationType
	State                   State
	EstimatedMonthlySavings float64 // USD
	Confidence              Confidence
	Details                 string
}
