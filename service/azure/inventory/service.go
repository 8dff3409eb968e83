package azureinventory

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	azurecompute "github.com/elC0mpa/cloud-cost-doctor/service/azure/compute"
	azuremonitor "github.com/elC0mpa/cloud-cost-doctor/service/azure/monitor"
)

func NewService(computeService azurecompute.ComputeService, monitorService azuremonitor.MonitorService, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		computeService: computeService,
		monitorService: monitorService,
		logger:         logger,
	}
}

// CollectInventory enumerates the subscription's VMs, unattached disks,
// and idle public IPs, then reads CPU metrics for the running VMs.
// Azure resources span regions, so the inventory's region is left empty
// and each resource carries its own location.
func (s *service) CollectInventory(ctx context.Context) (model.Inventory, error) {
	inv := model.Inventory{
		Provider:    model.ProviderAzure,
		Utilization: make(map[string]model.UtilizationSummary),
	}

	var vms, disks, addresses []model.Resource

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		vms, err = s.computeService.GetVirtualMachines(gctx)
		return err
	})
	g.Go(func() (err error) {
		disks, err = s.computeService.GetUnattachedDisks(gctx)
		return err
	})
	g.Go(func() (err error) {
		addresses, err = s.computeService.GetUnassociatedPublicIPs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return inv, err
	}

	inv.Resources = append(inv.Resources, vms...)
	inv.Resources = append(inv.Resources, disks...)
	inv.Resources = append(inv.Resources, addresses...)

	s.collectUtilization(ctx, &inv, vms)
	return inv, nil
}

func (s *service) collectUtilization(ctx context.Context, inv *model.Inventory, vms []model.Resource) {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metricConcurrency)

	for _, vm := range vms {
		if vm.State != model.StateRunning {
			continue
		}
		vm := vm
		g.Go(func() error {
			summary, err := s.monitorService.GetVMUtilization(gctx, vm.ID)
			if err != nil {
				s.logger.Warn("failed to read VM metrics",
					zap.String("resource", vm.Name),
					zap.Error(err))
				return nil
			}
			if len(summary) == 0 {
				return nil
			}
			mu.Lock()
			inv.Utilization[vm.ID] = summary
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
}

func (s *service) GetExpiringReservations(ctx context.Context) ([]model.Reservation, error) {
	return s.computeService.GetExpiringReservations(ctx)
}
