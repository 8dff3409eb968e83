package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

func setDefaults(config *Config) {
	config.General.LogLevel = "info"
	config.AWS.Region = "us-east-1"
	config.Analysis.CPUThresholdPercent = 5.0
	config.Analysis.MetricLookbackDays = 14
	config.Analysis.InfrequentAccessDays = 30
	config.Analysis.GlacierDays = 90
	config.Analysis.DeepArchiveDays = 180
	config.Analysis.MinBucketSizeMB = 128
	config.Analysis.MinUptimeHours = 168
	config.Analysis.LongTermMinCount = 5
	config.Analysis.ShortTermDiscountRate = 0.35
	config.Analysis.LongTermDiscountRate = 0.60
	config.Analysis.BaseUnitPrice = 0.10
	config.Reporting.Format = "table"
	config.Reporting.OutputDir = "."
}

// Load reads configuration from file and environment. A missing path
// yields the defaults plus environment overrides.
func Load(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvironment(config)

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// applyEnvironment lets the usual provider environment variables override
// the file so the CLI works in shells already set up for the cloud CLIs
func applyEnvironment(config *Config) {
	if v := os.Getenv("AWS_REGION"); v != "" {
		config.AWS.Region = v
	}
	if v := os.Getenv("AWS_PROFILE"); v != "" {
		config.AWS.Profile = v
	}
	if v := os.Getenv("AZURE_SUBSCRIPTION_ID"); v != "" {
		config.Azure.SubscriptionID = v
	}
	if v := os.Getenv("GCP_PROJECT_ID"); v != "" {
		config.GCP.ProjectID = v
	}
	if v := os.Getenv("GCP_BILLING_ACCOUNT"); v != "" {
		config.GCP.BillingAccount = v
	}
}

func validate(config *Config) error {
	a := config.Analysis
	if a.CPUThresholdPercent <= 0 || a.CPUThresholdPercent > 100 {
		return fmt.Errorf("cpu threshold must be in (0, 100]")
	}
	if a.MetricLookbackDays <= 0 {
		return fmt.Errorf("metric lookback must be positive")
	}
	if !(a.InfrequentAccessDays < a.GlacierDays && a.GlacierDays < a.DeepArchiveDays) {
		return fmt.Errorf("storage tier day thresholds must be strictly increasing")
	}
	if a.ShortTermDiscountRate <= 0 || a.ShortTermDiscountRate >= 1 {
		return fmt.Errorf("short term discount rate must be in (0, 1)")
	}
	if a.LongTermDiscountRate <= a.ShortTermDiscountRate || a.LongTermDiscountRate >= 1 {
		return fmt.Errorf("long term discount rate must exceed the short term rate and stay below 1")
	}
	if a.BaseUnitPrice <= 0 {
		return fmt.Errorf("base unit price must be positive")
	}
	switch config.Reporting.Format {
	case "table", "csv", "html", "json":
	default:
		return fmt.Errorf("unknown report format %q", config.Reporting.Format)
	}
	return nil
}

// HasAzure reports whether an Azure subscription is configured
func (c *Config) HasAzure() bool {
	return c.Azure.SubscriptionID != ""
}

// HasGCP reports whether a GCP project is configured
func (c *Config) HasGCP() bool {
	return c.GCP.ProjectID != ""
}

// HasGCPBilling reports whether GCP billing export is configured
func (c *Config) HasGCPBilling() bool {
	return c.GCP.ProjectID != "" && c.GCP.BillingAccount != ""
}
