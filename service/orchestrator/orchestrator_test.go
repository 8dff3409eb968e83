package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	"github.com/elC0mpa/cloud-cost-doctor/service/pricing"
	"github.com/elC0mpa/cloud-cost-doctor/service/report"
	"github.com/elC0mpa/cloud-cost-doctor/service/reserved"
	"github.com/elC0mpa/cloud-cost-doctor/service/rules"
)

type fakeIdentity struct {
	info *model.AccountInfo
	err  error
}

func (f *fakeIdentity) GetAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	return f.info, f.err
}

type fakeInventory struct {
	inv          model.Inventory
	invErr       error
	reservations []model.Reservation
}

func (f *fakeInventory) CollectInventory(ctx context.Context) (model.Inventory, error) {
	return f.inv, f.invErr
}

func (f *fakeInventory) GetExpiringReservations(ctx context.Context) ([]model.Reservation, error) {
	return f.reservations, nil
}

func testEngine() ([]rules.Rule, reserved.Grouper) {
	calc := pricing.NewCalculator(pricing.NewStaticCatalog(), 0)
	logger := zap.NewNop()
	return rules.DefaultRules(rules.DefaultSettings(), calc, logger),
		reserved.NewService(reserved.DefaultSettings(), calc, logger)
}

func testInventory() model.Inventory {
	return model.Inventory{
		Provider: model.ProviderAWS,
		Region:   "us-east-1",
		Resources: []model.Resource{{
			ID:       "i-0abc",
			Name:     "api-server",
			Kind:     model.KindComputeInstance,
			Provider: model.ProviderAWS,
			Region:   "us-east-1",
			Size:     "t3.xlarge",
			State:    model.StateRunning,
		}},
		Utilization: map[string]model.UtilizationSummary{
			"i-0abc": {model.MetricCPUUtilization: 2.5},
		},
	}
}

func TestOrchestrateCheckupWritesReport(t *testing.T) {
	outputDir := t.TempDir()
	ruleset, grouper := testEngine()

	providers := []Provider{{
		Name:      "aws",
		Identity:  &fakeIdentity{info: &model.AccountInfo{Provider: "aws", AccountID: "123456789012"}},
		Inventory: &fakeInventory{inv: testInventory()},
	}}

	svc := NewService(providers, ruleset, grouper, report.NewService(outputDir), zap.NewNop())

	err := svc.Orchestrate(model.Flags{Report: "json"})
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(outputDir, "checkup-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "api-server")
	assert.Contains(t, string(data), "Rightsize")
}

func TestOrchestrateSingleProviderFailure(t *testing.T) {
	ruleset, grouper := testEngine()

	providers := []Provider{{
		Name:      "aws",
		Identity:  &fakeIdentity{err: errors.New("access denied")},
		Inventory: &fakeInventory{},
	}}

	svc := NewService(providers, ruleset, grouper, report.NewService(t.TempDir()), zap.NewNop())

	err := svc.Orchestrate(model.Flags{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestCheckupProviderClassifiesAndGroups(t *testing.T) {
	ruleset, grouper := testEngine()
	svc := NewService(nil, ruleset, grouper, report.NewService(t.TempDir()), zap.NewNop())

	launched := time.Now().AddDate(0, -2, 0)
	inv := testInventory()
	for i := 0; i < 2; i++ {
		inv.Resources = append(inv.Resources, model.Resource{
			ID:         "i-fleet-" + string(rune('a'+i)),
			Kind:       model.KindComputeInstance,
			Provider:   model.ProviderAWS,
			Region:     "us-east-1",
			Size:       "m5.large",
			State:      model.StateRunning,
			LaunchTime: &launched,
		})
	}

	provider := Provider{
		Name:     "aws",
		Identity: &fakeIdentity{info: &model.AccountInfo{AccountID: "123456789012"}},
		Inventory: &fakeInventory{
			inv:          inv,
			reservations: []model.Reservation{{ID: "r-1", Status: "expiring"}},
		},
	}

	result := svc.checkupProvider(context.Background(), provider)
	require.NoError(t, result.Error)
	assert.Equal(t, "123456789012", result.AccountID)
	require.Len(t, result.Reservations, 1)

	types := map[model.RecommendationType]bool{}
	for _, rec := range result.Recommendations {
		types[rec.Type] = true
	}
	assert.True(t, types[model.RecommendationRightsize])
	assert.True(t, types[model.RecommendationReservedCapacity])

	// ranked by savings, highest first
	for i := 1; i < len(result.Recommendations); i++ {
		assert.GreaterOrEqual(t,
			result.Recommendations[i-1].EstimatedMonthlySavings,
			result.Recommendations[i].EstimatedMonthlySavings)
	}
	assert.Positive(t, result.TotalMonthly)
}
