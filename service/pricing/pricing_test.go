package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func TestStaticCatalogPriceOf(t *testing.T) {
	catalog := NewStaticCatalog()

	price, ok := catalog.PriceOf(model.KindComputeInstance, "t3.xlarge")
	assert.True(t, ok)
	assert.Equal(t, 0.1664, price)

	price, ok = catalog.PriceOf(model.KindManagedDatabase, "db.t3.micro")
	assert.True(t, ok)
	assert.Equal(t, 0.017, price)

	_, ok = catalog.PriceOf(model.KindComputeInstance, "t9.mega")
	assert.False(t, ok)

	// Kind is part of the key: a DB size is not an instance size
	_, ok = catalog.PriceOf(model.KindComputeInstance, "db.t3.micro")
	assert.False(t, ok)
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name      string
		provider  model.Provider
		size      string
		family    string
		magnitude float64
		wantErr   bool
	}{
		{name: "aws large", provider: model.ProviderAWS, size: "t3.large", family: "t3", magnitude: 4},
		{name: "aws 24xlarge", provider: model.ProviderAWS, size: "m5.24xlarge", family: "m5", magnitude: 192},
		{name: "aws unknown token", provider: model.ProviderAWS, size: "t3.mega", wantErr: true},
		{name: "aws no dot", provider: model.ProviderAWS, size: "t3large", wantErr: true},
		{name: "azure versioned", provider: model.ProviderAzure, size: "Standard_D4s_v3", family: "Ds_v3", magnitude: 4},
		{name: "azure burstable", provider: model.ProviderAzure, size: "Standard_B2ms", family: "Bms", magnitude: 2},
		{name: "azure garbage", provider: model.ProviderAzure, size: "Basic_A1", wantErr: true},
		{name: "gcp standard", provider: model.ProviderGCP, size: "n2-standard-8", family: "n2-standard", magnitude: 8},
		{name: "gcp shared core", provider: model.ProviderGCP, size: "e2-medium", family: "e2", magnitude: 2},
		{name: "gcp unknown suffix", provider: model.ProviderGCP, size: "e2-enormous", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, err := ParseSize(tt.provider, tt.size)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownSize)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.family, class.Family)
			assert.Equal(t, tt.magnitude, class.Magnitude)
		})
	}
}

func TestDowngrade(t *testing.T) {
	tests := []struct {
		name     string
		provider model.Provider
		size     string
		want     string
		ok       bool
	}{
		{name: "aws one step", provider: model.ProviderAWS, size: "t3.xlarge", want: "t3.large", ok: true},
		{name: "aws floor", provider: model.ProviderAWS, size: "t3.nano", ok: false},
		{name: "aws odd tier", provider: model.ProviderAWS, size: "c5.9xlarge", want: "c5.4xlarge", ok: true},
		{name: "azure halves cores", provider: model.ProviderAzure, size: "Standard_D4s_v3", want: "Standard_D2s_v3", ok: true},
		{name: "azure floor", provider: model.ProviderAzure, size: "Standard_B1s", ok: false},
		{name: "gcp halves cores", provider: model.ProviderGCP, size: "e2-standard-8", want: "e2-standard-4", ok: true},
		{name: "gcp floor", provider: model.ProviderGCP, size: "e2-standard-2", ok: false},
		{name: "gcp shared core", provider: model.ProviderGCP, size: "e2-medium", want: "e2-small", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Downgrade(tt.provider, tt.size)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestHourlyPriceFallsBackToMagnitude(t *testing.T) {
	calc := NewCalculator(NewStaticCatalog(), 0)

	// Catalog hit returns the list price
	price, err := calc.HourlyPrice(model.ProviderAWS, model.KindComputeInstance, "t3.large")
	require.NoError(t, err)
	assert.Equal(t, 0.0832, price)

	// Unknown size with a parseable magnitude uses the estimator
	price, err = calc.HourlyPrice(model.ProviderAWS, model.KindComputeInstance, "z1d.large")
	require.NoError(t, err)
	assert.InDelta(t, 4*DefaultBaseUnitPrice, price, 1e-9)

	// Unparseable size is an error, not a guess
	_, err = calc.HourlyPrice(model.ProviderAWS, model.KindComputeInstance, "weird")
	assert.ErrorIs(t, err, ErrUnknownSize)
}

func TestMonthlyCost(t *testing.T) {
	calc := NewCalculator(NewStaticCatalog(), 0)

	cost, err := calc.MonthlyCost(model.ProviderAWS, model.KindComputeInstance, "t3.large")
	require.NoError(t, err)
	assert.InDelta(t, 0.0832*720, cost, 1e-9)
}

func TestDownsizingSavings(t *testing.T) {
	calc := NewCalculator(NewStaticCatalog(), 0)

	// Both sizes in the catalog: exact differential
	savings, err := calc.DownsizingSavings(model.ProviderAWS, model.KindComputeInstance, "t3.xlarge", "t3.large")
	require.NoError(t, err)
	assert.InDelta(t, (0.1664-0.0832)*720, savings, 1e-9)

	// Either side missing: both sides fall back so the differential is
	// internally consistent
	savings, err = calc.DownsizingSavings(model.ProviderAWS, model.KindComputeInstance, "z1d.xlarge", "z1d.large")
	require.NoError(t, err)
	assert.InDelta(t, (8-4)*DefaultBaseUnitPrice*720, savings, 1e-9)

	_, err = calc.DownsizingSavings(model.ProviderAWS, model.KindComputeInstance, "weird", "t3.large")
	assert.ErrorIs(t, err, ErrUnknownSize)
}

func TestCustomBaseUnitPrice(t *testing.T) {
	calc := NewCalculator(NewStaticCatalog(), 0.05)

	price, err := calc.HourlyPrice(model.ProviderAWS, model.KindComputeInstance, "z1d.large")
	require.NoError(t, err)
	assert.InDelta(t, 4*0.05, price, 1e-9)
}
