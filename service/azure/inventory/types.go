package azureinventory

import (
	"go.uber.org/zap"

	azurecompute "github.com/elC0mpa/cloud-cost-doctor/service/azure/compute"
	azuremonitor "github.com/elC0mpa/cloud-cost-doctor/service/azure/monitor"
)

type service struct {
	computeService azurecompute.ComputeService
	monitorService azuremonitor.MonitorService
	logger         *zap.Logger
}

const metricConcurrency = 8
