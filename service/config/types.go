package config

// Config is the file-backed application configuration. Every field has a
// working default so running without a config file is always valid.
type Config struct {
	General   GeneralConfig   `yaml:"general"`
	AWS       AWSConfig       `yaml:"aws"`
	Azure     AzureConfig     `yaml:"azure"`
	GCP       GCPConfig       `yaml:"gcp"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Reporting ReportingConfig `yaml:"reporting"`
}

// GeneralConfig holds cross-provider settings
type GeneralConfig struct {
	LogLevel string `yaml:"logLevel"`
}

// AWSConfig holds AWS connection settings
type AWSConfig struct {
	Region  string `yaml:"region"`
	Profile string `yaml:"profile"`
}

// AzureConfig holds Azure connection settings
type AzureConfig struct {
	SubscriptionID string `yaml:"subscriptionId"`
}

// GCPConfig holds GCP connection settings
type GCPConfig struct {
	ProjectID      string `yaml:"projectId"`
	BillingAccount string `yaml:"billingAccount"`
}

// AnalysisConfig holds the tunable analysis thresholds. Fixed engine
// constants (the idle cutoff, confidence bands) are deliberately not
// configurable.
type AnalysisConfig struct {
	CPUThresholdPercent   float64 `yaml:"cpuThresholdPercent"`
	MetricLookbackDays    int     `yaml:"metricLookbackDays"`
	InfrequentAccessDays  int     `yaml:"infrequentAccessDays"`
	GlacierDays           int     `yaml:"glacierDays"`
	DeepArchiveDays       int     `yaml:"deepArchiveDays"`
	MinBucketSizeMB       float64 `yaml:"minBucketSizeMb"`
	MinUptimeHours        float64 `yaml:"minUptimeHours"`
	LongTermMinCount      int     `yaml:"longTermMinCount"`
	ShortTermDiscountRate float64 `yaml:"shortTermDiscountRate"`
	LongTermDiscountRate  float64 `yaml:"longTermDiscountRate"`
	BaseUnitPrice         float64 `yaml:"baseUnitPrice"`
}

// ReportingConfig holds report output settings
type ReportingConfig struct {
	Format    string `yaml:"format"` // "table", "csv", "html", "json"
	OutputDir string `yaml:"outputDir"`
}
