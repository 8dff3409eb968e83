package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/elC0mpa/cloud-cost-doctor/cmd/mcp/response"
	"github.com/elC0mpa/cloud-cost-doctor/service"
	"github.com/elC0mpa/cloud-cost-doctor/service/aggregator"
	"github.com/elC0mpa/cloud-cost-doctor/service/logging"
	"github.com/elC0mpa/cloud-cost-doctor/service/pricing"
	"github.com/elC0mpa/cloud-cost-doctor/service/reserved"
	"github.com/elC0mpa/cloud-cost-doctor/service/rules"
)

// defaultLookbackDays is the metric window used when no configuration
// file is in play. MCP tools always run with engine defaults.
const defaultLookbackDays = 14

// logger writes JSON diagnostics to stderr; the stdio transport owns stdout.
var logger = logging.NewJSON("warn")

// newEngine builds the default analysis engine shared by every provider's
// recommendation tool
func newEngine() ([]rules.Rule, reserved.Grouper) {
	calc := pricing.NewCalculator(pricing.NewStaticCatalog(), pricing.DefaultBaseUnitPrice)
	ruleset := rules.DefaultRules(rules.DefaultSettings(), calc, logger)
	grouper := reserved.NewService(reserved.DefaultSettings(), calc, logger)
	return ruleset, grouper
}

// runCheckup runs the full savings analysis for one provider
func runCheckup(ctx context.Context, providerName string, identity service.IdentityService, inventory service.InventoryService) (*response.CheckupSummary, error) {
	info, err := identity.GetAccountInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}

	inv, err := inventory.CollectInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect inventory: %w", err)
	}

	// Reservations are advisory; a failure here should not sink the checkup
	reservations, err := inventory.GetExpiringReservations(ctx)
	if err != nil {
		reservations = nil
	}

	ruleset, grouper := newEngine()
	recs := rules.Evaluate(ruleset, inv, time.Now())
	summary := aggregator.Summarize(recs, grouper.Group(inv))

	result := response.ConvertCheckupSummary(providerName, info.AccountID, summary, reservations)
	return &result, nil
}
