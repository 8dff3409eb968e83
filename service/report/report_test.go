package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func sampleResults() []model.ProviderCheckupResult {
	return []model.ProviderCheckupResult{
		{
			Provider:  "aws",
			AccountID: "123456789012",
			Recommendations: []model.Recommendation{
				{
					ResourceID:              "i-0abc",
					ResourceName:            "api-server",
					Provider:                model.ProviderAWS,
					Region:                  "us-east-1",
					Kind:                    model.KindComputeInstance,
					Type:                    model.RecommendationRightsize,
					EstimatedMonthlySavings: 59.90,
					Confidence:              model.ConfidenceHigh,
					Details:                 "Consider downsizing from t3.xlarge to t3.large.",
				},
				{
					ResourceID:              "vol-1",
					ResourceName:            "vol-1",
					Provider:                model.ProviderAWS,
					Region:                  "us-east-1",
					Kind:                    model.KindBlockVolume,
					Type:                    model.RecommendationUnusedResource,
					EstimatedMonthlySavings: 8.0,
					Confidence:              model.ConfidenceHigh,
					Details:                 "Volume of 100 GB is not attached to any instance.",
				},
			},
			Reservations: []model.Reservation{
				{ID: "r-1", InstanceType: "m5.large", Status: "expiring", DaysUntilExpiry: 12},
			},
			TotalMonthly: 67.90,
		},
		{
			Provider: "azure",
			Error:    errors.New("credential expired"),
		},
	}
}

func TestBuildRollsUpTotals(t *testing.T) {
	report := NewService(t.TempDir()).Build(sampleResults())

	assert.False(t, report.GeneratedAt.IsZero())
	assert.InDelta(t, 67.90, report.TotalMonthly, 1e-9)
	assert.InDelta(t, 59.90, report.ByType[model.RecommendationRightsize], 1e-9)
	assert.InDelta(t, 8.0, report.ByType[model.RecommendationUnusedResource], 1e-9)
}

func TestWriteCSV(t *testing.T) {
	svc := NewService(t.TempDir())
	report := svc.Build(sampleResults())

	path, err := svc.Write(report, FormatCSV)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".csv"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Provider,Account,Region,Resource,Kind,Type,Recommendation,Monthly Savings (USD),Confidence")
	assert.Contains(t, content, "aws,123456789012,us-east-1,api-server,compute-instance,Rightsize")
	assert.Contains(t, content, "59.90,High")
	assert.Contains(t, content, "SUMMARY")
	assert.Contains(t, content, "Total Monthly Savings,67.90")
	assert.Contains(t, content, "SAVINGS BY TYPE")

	// failed providers carry no rows
	assert.NotContains(t, content, "azure")
}

func TestWriteJSON(t *testing.T) {
	svc := NewService(t.TempDir())
	report := svc.Build(sampleResults())

	path, err := svc.Write(report, FormatJSON)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		TotalMonthly float64            `json:"total_monthly_savings"`
		ByType       map[string]float64 `json:"savings_by_type"`
		Providers    []struct {
			Provider  string `json:"provider"`
			AccountID string `json:"account_id"`
			Error     string `json:"error"`
		} `json:"providers"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.InDelta(t, 67.90, decoded.TotalMonthly, 1e-9)
	assert.InDelta(t, 59.90, decoded.ByType["Rightsize"], 1e-9)
	require.Len(t, decoded.Providers, 2)
	assert.Equal(t, "aws", decoded.Providers[0].Provider)
	assert.Equal(t, "123456789012", decoded.Providers[0].AccountID)
	assert.Equal(t, "credential expired", decoded.Providers[1].Error)
}

func TestWriteHTML(t *testing.T) {
	svc := NewService(t.TempDir())
	report := svc.Build(sampleResults())

	path, err := svc.Write(report, FormatHTML)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".html"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "<html")
	assert.Contains(t, content, "api-server")
	assert.Contains(t, content, "credential expired")
}

func TestWriteUnknownFormat(t *testing.T) {
	svc := NewService(t.TempDir())
	report := svc.Build(nil)

	_, err := svc.Write(report, Format("pdf"))
	assert.Error(t, err)
}

func TestWriteCSVEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(Report{}, &buf))
	assert.Contains(t, buf.String(), "Total Monthly Savings,0.00")
}
