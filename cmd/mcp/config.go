package main

import "os"

// Config holds environment-based configuration for all cloud providers.
// The MCP server has no flags; everything comes from the environment.
type Config struct {
	AWSRegion  string
	AWSProfile string

	GCPProjectID      string
	GCPBillingAccount string

	AzureSubscriptionID string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		AWSRegion:           getEnvOrDefault("AWS_REGION", "us-east-1"),
		AWSProfile:          os.Getenv("AWS_PROFILE"),
		GCPProjectID:        os.Getenv("GCP_PROJECT_ID"),
		GCPBillingAccount:   os.Getenv("GCP_BILLING_ACCOUNT"),
		AzureSubscriptionID: os.Getenv("AZURE_SUBSCRIPTION_ID"),
	}
}

// HasGCP returns true if a GCP project is configured
func (c *Config) HasGCP() bool {
	return c.GCPProjectID != ""
}

// HasAzure returns true if an Azure subscription is configured
func (c *Config) HasAzure() bool {
	return c.AzureSubscriptionID != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
