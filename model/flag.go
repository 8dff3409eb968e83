package model

type Flags struct {
	// Common flags
	Provider   string
	ConfigPath string
	Costs      bool
	Trend      bool
	Report     string // "", "csv", "html", "json"

	// AWS-specific flags
	Region  string
	Profile string

	// GCP-specific flags
	Project        string
	BillingAccount string

	// Azure-specific flags
	Subscription string
}
