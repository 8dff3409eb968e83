package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"AWS_REGION", "AWS_PROFILE", "AZURE_SUBSCRIPTION_ID", "GCP_PROJECT_ID", "GCP_BILLING_ACCOUNT"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearProviderEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.General.LogLevel)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, 5.0, cfg.Analysis.CPUThresholdPercent)
	assert.Equal(t, 14, cfg.Analysis.MetricLookbackDays)
	assert.Equal(t, 30, cfg.Analysis.InfrequentAccessDays)
	assert.Equal(t, 90, cfg.Analysis.GlacierDays)
	assert.Equal(t, 180, cfg.Analysis.DeepArchiveDays)
	assert.Equal(t, 168.0, cfg.Analysis.MinUptimeHours)
	assert.Equal(t, 5, cfg.Analysis.LongTermMinCount)
	assert.Equal(t, 0.35, cfg.Analysis.ShortTermDiscountRate)
	assert.Equal(t, 0.60, cfg.Analysis.LongTermDiscountRate)
	assert.Equal(t, "table", cfg.Reporting.Format)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
general:
  logLevel: debug
aws:
  region: eu-central-1
  profile: production
azure:
  subscriptionId: sub-123
analysis:
  cpuThresholdPercent: 10
  glacierDays: 120
reporting:
  format: json
  outputDir: /tmp/reports
`)

	clearProviderEnv(t)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.General.LogLevel)
	assert.Equal(t, "eu-central-1", cfg.AWS.Region)
	assert.Equal(t, "production", cfg.AWS.Profile)
	assert.Equal(t, 10.0, cfg.Analysis.CPUThresholdPercent)
	assert.Equal(t, 120, cfg.Analysis.GlacierDays)
	assert.Equal(t, "json", cfg.Reporting.Format)
	assert.Equal(t, "/tmp/reports", cfg.Reporting.OutputDir)

	// untouched fields keep their defaults
	assert.Equal(t, 180, cfg.Analysis.DeepArchiveDays)
	assert.True(t, cfg.HasAzure())
	assert.False(t, cfg.HasGCP())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfigFile(t, "aws: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
aws:
  region: eu-central-1
`)

	clearProviderEnv(t)
	t.Setenv("AWS_REGION", "ap-southeast-2")
	t.Setenv("GCP_PROJECT_ID", "my-project")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ap-southeast-2", cfg.AWS.Region)
	assert.Equal(t, "my-project", cfg.GCP.ProjectID)
	assert.True(t, cfg.HasGCP())
	assert.False(t, cfg.HasGCPBilling())
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "cpu threshold out of range",
			content: `
analysis:
  cpuThresholdPercent: 150
`,
		},
		{
			name: "non-increasing storage tiers",
			content: `
analysis:
  infrequentAccessDays: 90
  glacierDays: 90
`,
		},
		{
			name: "long term rate below short term",
			content: `
analysis:
  shortTermDiscountRate: 0.5
  longTermDiscountRate: 0.4
`,
		},
		{
			name: "unknown report format",
			content: `
reporting:
  format: pdf
`,
		},
		{
			name: "negative lookback",
			content: `
analysis:
  metricLookbackDays: -3
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestHasGCPBilling(t *testing.T) {
	path := writeConfigFile(t, `
gcp:
  projectId: my-project
  billingAccount: 0123AB-456789
`)

	clearProviderEnv(t)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.HasGCPBilling())
}
