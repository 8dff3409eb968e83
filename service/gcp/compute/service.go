package gcpcompute

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func NewService(ctx context.Context, projectID string) (*service, error) {
	computeClient, err := compute.NewService(ctx, option.WithScopes(
		compute.ComputeReadonlyScope,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create Compute client: %w", err)
	}

	return &service{
		projectID:     projectID,
		computeClient: computeClient,
	}, nil
}

// GetInstances enumerates instances across every zone in the project.
// Zones that fail to list are skipped so one zonal outage does not hide
// the rest of the fleet.
func (s *service) GetInstances(ctx context.Context) ([]model.Resource, error) {
	zonesResp, err := s.computeClient.Zones.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	var resources []model.Resource
	for _, zone := range zonesResp.Items {
		instancesResp, err := s.computeClient.Instances.List(s.projectID, zone.Name).Context(ctx).Do()
		if err != nil {
			continue
		}
		for _, instance := range instancesResp.Items {
			resources = append(resources, s.toResource(instance, zone.Name))
		}
	}

	return resources, nil
}

func (s *service) toResource(instance *compute.Instance, zone string) model.Resource {
	res := model.Resource{
		ID:         fmt.Sprintf("%d", instance.Id),
		Name:       instance.Name,
		Kind:       model.KindComputeInstance,
		Provider:   model.ProviderGCP,
		Region:     zoneRegion(zone),
		Size:       lastURLSegment(instance.MachineType),
		PowerState: instance.Status,
		Tags:       instance.Labels,
	}

	if created, err := time.Parse(time.RFC3339, instance.CreationTimestamp); err == nil {
		res.LaunchTime = &created
	}

	switch instance.Status {
	case "RUNNING":
		res.State = model.StateRunning
	case "TERMINATED", "STOPPED":
		res.State = model.StateStopped
		if stopped, err := time.Parse(time.RFC3339, instance.LastStopTimestamp); err == nil {
			res.StateSince = &stopped
		}
	default:
		res.State = model.StateOther
	}

	return res
}

// GetUnattachedDisks returns persistent disks no instance uses
func (s *service) GetUnattachedDisks(ctx context.Context) ([]model.Resource, error) {
	zonesResp, err := s.computeClient.Zones.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	var resources []model.Resource
	for _, zone := range zonesResp.Items {
		disksResp, err := s.computeClient.Disks.List(s.projectID, zone.Name).Context(ctx).Do()
		if err != nil {
			continue
		}
		for _, disk := range disksResp.Items {
			if len(disk.Users) != 0 || disk.Status != "READY" {
				continue
			}
			resources = append(resources, model.Resource{
				ID:       disk.Name,
				Name:     disk.Name,
				Kind:     model.KindBlockVolume,
				Provider: model.ProviderGCP,
				Region:   zoneRegion(zone.Name),
				State:    model.StateAvailable,
				SizeGB:   int32(disk.SizeGb),
			})
		}
	}

	return resources, nil
}

// GetUnassignedExternalIPs returns reserved external addresses nothing
// uses, both global and regional
func (s *service) GetUnassignedExternalIPs(ctx context.Context) ([]model.Resource, error) {
	var resources []model.Resource

	appendReserved := func(addresses []*compute.Address, region string) {
		for _, addr := range addresses {
			if len(addr.Users) != 0 || addr.Status != "RESERVED" {
				continue
			}
			resources = append(resources, model.Resource{
				ID:       addr.Name,
				Name:     addr.Address,
				Kind:     model.KindPublicIP,
				Provider: model.ProviderGCP,
				Region:   region,
				State:    model.StateAvailable,
			})
		}
	}

	if globalResp, err := s.computeClient.GlobalAddresses.List(s.projectID).Context(ctx).Do(); err == nil {
		appendReserved(globalResp.Items, "global")
	}

	regionsResp, err := s.computeClient.Regions.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	for _, region := range regionsResp.Items {
		addressesResp, err := s.computeClient.Addresses.List(s.projectID, region.Name).Context(ctx).Do()
		if err != nil {
			continue
		}
		appendReserved(addressesResp.Items, region.Name)
	}

	return resources, nil
}

// GetExpiringCommitments reports committed use discounts expiring within
// 30 days or expired within the last 30
func (s *service) GetExpiringCommitments(ctx context.Context) ([]model.Reservation, error) {
	regionsResp, err := s.computeClient.Regions.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	now := time.Now()
	next30Days := now.Add(30 * 24 * time.Hour)
	prev30Days := now.Add(-30 * 24 * time.Hour)

	var result []model.Reservation
	for _, region := range regionsResp.Items {
		commitmentsResp, err := s.computeClient.RegionCommitments.List(s.projectID, region.Name).Context(ctx).Do()
		if err != nil {
			continue
		}

		for _, commitment := range commitmentsResp.Items {
			endTime, err := time.Parse(time.RFC3339, commitment.EndTimestamp)
			if err != nil {
				continue
			}

			daysDiff := int(endTime.Sub(now).Hours() / 24)
			reservation := model.Reservation{
				ID:              commitment.Name,
				InstanceType:    commitment.Type,
				DaysUntilExpiry: daysDiff,
			}

			switch {
			case commitment.Status == "ACTIVE" && endTime.After(now) && endTime.Before(next30Days):
				reservation.Status = "expiring"
			case endTime.After(prev30Days) && endTime.Before(now):
				reservation.Status = "expired"
			default:
				continue
			}
			result = append(result, reservation)
		}
	}

	return result, nil
}

// zoneRegion trims the zone suffix, e.g. "us-central1-a" to "us-central1"
func zoneRegion(zone string) string {
	if idx := strings.LastIndex(zone, "-"); idx > 0 {
		return zone[:idx]
	}
	return zone
}

func lastURLSegment(url string) string {
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		return url[idx+1:]
	}
	return url
}
