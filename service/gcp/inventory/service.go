package gcpinventory

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	gcpcompute "github.com/elC0mpa/cloud-cost-doctor/service/gcp/compute"
)

func NewService(computeService gcpcompute.ComputeService) *service {
	return &service{
		computeService: computeService,
	}
}

// CollectInventory enumerates instances, unattached disks, and reserved
// but unused addresses across the project. GCP exposes no averaged CPU
// metric through the compute API, so the inventory carries no utilization
// and the metric-driven rules stay silent for this provider.
func (s *service) CollectInventory(ctx context.Context) (model.Inventory, error) {
	inv := model.Inventory{
		Provider: model.ProviderGCP,
	}

	var instances, disks, addresses []model.Resource

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		instances, err = s.computeService.GetInstances(gctx)
		return err
	})
	g.Go(func() (err error) {
		disks, err = s.computeService.GetUnattachedDisks(gctx)
		return err
	})
	g.Go(func() (err error) {
		addresses, err = s.computeService.GetUnassignedExternalIPs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return inv, err
	}

	inv.Resources = append(inv.Resources, instances...)
	inv.Resources = append(inv.Resources, disks...)
	inv.Resources = append(inv.Resources, addresses...)
	return inv, nil
}

func (s *service) GetExpiringReservations(ctx context.Context) ([]model.Reservation, error) {
	return s.computeService.GetExpiringCommitments(ctx)
}
