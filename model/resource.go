package model

import "time"

// Provider identifies the cloud a resource belongs to
type Provider string

const (
	ProviderAWS   Provider = "aws"
	ProviderAzure Provider = "azure"
	ProviderGCP   Provider = "gcp"
)

// ResourceKind classifies a resource for pricing and rule dispatch
type ResourceKind string

const (
	KindComputeInstance ResourceKind = "compute-instance"
	KindStorageBucket   ResourceKind = "storage-bucket"
	KindManagedDatabase ResourceKind = "managed-database"
	KindBlockVolume     ResourceKind = "block-volume"
	KindLoadBalancer    ResourceKind = "load-balancer"
	KindPublicIP        ResourceKind = "public-ip"
)

// ResourceState is the lifecycle state reported by the provider
type ResourceState string

const (
	StateRunning   ResourceState = "running"
	StateStopped   ResourceState = "stopped"
	StateAvailable ResourceState = "available"
	StateOther     ResourceState = "other"
)

// Resource describes one cloud object under evaluation
type Resource struct {
	ID         string
	Name       string
	Kind       ResourceKind
	Provider   Provider
	Region     string
	Size       string // provider size vocabulary, e.g. "t3.xlarge" or "Standard_D2s_v3"
	State      ResourceState
	PowerState string
	Tags       map[string]string
	LaunchTime *time.Time
	StateSince *time.Time // when the current state was entered, if known
	SizeGB     int32      // volumes only
}

// UptimeHours returns elapsed hours since the resource was created,
// or 0 when the provider did not report a launch time.
func (r Resource) UptimeHours(now time.Time) float64 {
	if r.LaunchTime == nil {
		return 0
	}
	return now.Sub(*r.LaunchTime).Hours()
}

// AccountInfo represents cloud account/project identity
type AccountInfo struct {
	Provider    string
	AccountID   string
	AccountName string
}

// Reservation represents an existing reserved instance/commitment
type Reservation struct {
	ID              string
	InstanceType    string
	Status          string // "expiring", "expired", "active"
	DaysUntilExpiry int
}
