package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func TestParseTransitionDate(t *testing.T) {
	reason := "User initiated (2024-03-15 10:30:00 UTC)"

	parsed, err := ParseTransitionDate(reason)
	require.NoError(t, err)

	expected := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.True(t, parsed.Equal(expected))
}

func TestParseTransitionDateNoMatch(t *testing.T) {
	_, err := ParseTransitionDate("User initiated shutdown")
	assert.Error(t, err)
}

func TestParseTransitionDateBadFormat(t *testing.T) {
	_, err := ParseTransitionDate("User initiated (yesterday afternoon)")
	assert.Error(t, err)
}

func TestSortProviderCheckupResults(t *testing.T) {
	results := []model.ProviderCheckupResult{
		{Provider: "azure"},
		{Provider: "gcp"},
		{Provider: "aws"},
	}

	SortProviderCheckupResults(results)

	assert.Equal(t, "aws", results[0].Provider)
	assert.Equal(t, "gcp", results[1].Provider)
	assert.Equal(t, "azure", results[2].Provider)
}

func TestSortProviderCostResults(t *testing.T) {
	results := []model.ProviderCostResult{
		{Provider: "gcp"},
		{Provider: "azure"},
		{Provider: "aws"},
	}

	SortProviderCostResults(results)

	assert.Equal(t, "aws", results[0].Provider)
	assert.Equal(t, "gcp", results[1].Provider)
	assert.Equal(t, "azure", results[2].Provider)
}
