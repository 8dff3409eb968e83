package orchestrator

import (
	"go.uber.org/zap"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	"github.com/elC0mpa/cloud-cost-doctor/service"
	"github.com/elC0mpa/cloud-cost-doctor/service/report"
	"github.com/elC0mpa/cloud-cost-doctor/service/reserved"
	"github.com/elC0mpa/cloud-cost-doctor/service/rules"
)

// Provider bundles one cloud's collaborators. Cost is nil when the
// provider has no cost source configured (GCP without a billing export).
type Provider struct {
	Name      string
	Identity  service.IdentityService
	Cost      service.CostService
	Inventory service.InventoryService
}

type orchestratorService struct {
	providers []Provider
	ruleset   []rules.Rule
	grouper   reserved.Grouper
	reporter  report.ReportService
	logger    *zap.Logger
}

type OrchestratorService interface {
	Orchestrate(flags model.Flags) error
}
