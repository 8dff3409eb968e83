package azuremonitor

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/monitor/armmonitor"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

type service struct {
	client       *armmonitor.MetricsClient
	lookbackDays int
}

type MonitorService interface {
	GetVMUtilization(ctx context.Context, resourceID string) (model.UtilizationSummary, error)
}

// Credential is passed to allow reuse across services
type Credential = azidentity.DefaultAzureCredential
