package azurecompute

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func NewService(subscriptionID string, credential *Credential) (*service, error) {
	vmClient, err := armcompute.NewVirtualMachinesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create VM client: %w", err)
	}

	disksClient, err := armcompute.NewDisksClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create disks client: %w", err)
	}

	publicIPClient, err := armnetwork.NewPublicIPAddressesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create public IP client: %w", err)
	}

	reservationsClient, err := armreservations.NewReservationOrderClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservations client: %w", err)
	}

	return &service{
		subscriptionID:     subscriptionID,
		vmClient:           vmClient,
		disksClient:        disksClient,
		publicIPClient:     publicIPClient,
		reservationsClient: reservationsClient,
	}, nil
}

// GetVirtualMachines enumerates every VM in the subscription. The power
// state needs a per-VM instance view call; VMs whose instance view cannot
// be read are reported without a state rather than dropped.
func (s *service) GetVirtualMachines(ctx context.Context) ([]model.Resource, error) {
	var resources []model.Resource

	pager := s.vmClient.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list VMs: %w", err)
		}

		for _, vm := range page.Value {
			if vm.ID == nil {
				continue
			}
			res := s.toResource(vm)

			resourceGroup := extractResourceGroup(*vm.ID)
			instanceView, err := s.vmClient.InstanceView(ctx, resourceGroup, res.Name, nil)
			if err == nil {
				res.State, res.PowerState = powerState(instanceView.Statuses)
			}

			resources = append(resources, res)
		}
	}

	return resources, nil
}

func (s *service) toResource(vm *armcompute.VirtualMachine) model.Resource {
	res := model.Resource{
		ID:       deref(vm.ID),
		Name:     deref(vm.Name),
		Kind:     model.KindComputeInstance,
		Provider: model.ProviderAzure,
		Region:   deref(vm.Location),
		State:    model.StateOther,
	}

	if len(vm.Tags) > 0 {
		res.Tags = make(map[string]string, len(vm.Tags))
		for key, value := range vm.Tags {
			res.Tags[key] = deref(value)
		}
	}

	if vm.Properties != nil {
		if vm.Properties.HardwareProfile != nil && vm.Properties.HardwareProfile.VMSize != nil {
			res.Size = string(*vm.Properties.HardwareProfile.VMSize)
		}
		if vm.Properties.TimeCreated != nil {
			launch := *vm.Properties.TimeCreated
			res.LaunchTime = &launch
		}
	}

	return res
}

// powerState maps the instance view status codes into the shared state
// vocabulary. Deallocated VMs count as stopped since they no longer incur
// compute charges but keep their disks.
func powerState(statuses []*armcompute.InstanceViewStatus) (model.ResourceState, string) {
	for _, status := range statuses {
		code := deref(status.Code)
		if !strings.HasPrefix(code, "PowerState/") {
			continue
		}
		raw := strings.TrimPrefix(code, "PowerState/")
		switch raw {
		case "running":
			return model.StateRunning, raw
		case "deallocated", "stopped":
			return model.StateStopped, raw
		default:
			return model.StateOther, raw
		}
	}
	return model.StateOther, ""
}

// GetUnattachedDisks returns managed disks in the Unattached state
func (s *service) GetUnattachedDisks(ctx context.Context) ([]model.Resource, error) {
	var resources []model.Resource

	pager := s.disksClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list disks: %w", err)
		}

		for _, disk := range page.Value {
			if disk.Properties == nil || disk.Properties.DiskState == nil {
				continue
			}
			if *disk.Properties.DiskState != armcompute.DiskStateUnattached {
				continue
			}

			var sizeGB int32
			if disk.Properties.DiskSizeGB != nil {
				sizeGB = *disk.Properties.DiskSizeGB
			}
			resources = append(resources, model.Resource{
				ID:       deref(disk.ID),
				Name:     deref(disk.Name),
				Kind:     model.KindBlockVolume,
				Provider: model.ProviderAzure,
				Region:   deref(disk.Location),
				State:    model.StateAvailable,
				SizeGB:   sizeGB,
			})
		}
	}

	return resources, nil
}

// GetUnassociatedPublicIPs returns public IPs with no IP configuration,
// meaning nothing uses them
func (s *service) GetUnassociatedPublicIPs(ctx context.Context) ([]model.Resource, error) {
	var resources []model.Resource

	pager := s.publicIPClient.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list public IPs: %w", err)
		}

		for _, ip := range page.Value {
			if ip.Properties == nil || ip.Properties.IPConfiguration != nil {
				continue
			}
			name := deref(ip.Name)
			if address := deref(ip.Properties.IPAddress); address != "" {
				name = address
			}
			resources = append(resources, model.Resource{
				ID:       deref(ip.ID),
				Name:     name,
				Kind:     model.KindPublicIP,
				Provider: model.ProviderAzure,
				Region:   deref(ip.Location),
				State:    model.StateAvailable,
			})
		}
	}

	return resources, nil
}

// GetExpiringReservations reports reservation orders expiring within 30
// days or expired within the last 30
func (s *service) GetExpiringReservations(ctx context.Context) ([]model.Reservation, error) {
	now := time.Now()
	next30Days := now.Add(30 * 24 * time.Hour)
	prev30Days := now.Add(-30 * 24 * time.Hour)

	var result []model.Reservation

	pager := s.reservationsClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			// the reservations API needs tenant-level permissions many
			// subscriptions lack, so treat failure as "none visible"
			return result, nil
		}

		for _, order := range page.Value {
			if order.Properties == nil || order.Properties.ExpiryDate == nil {
				continue
			}

			expiry := *order.Properties.ExpiryDate
			daysDiff := int(expiry.Sub(now).Hours() / 24)
			reservation := model.Reservation{
				ID:              deref(order.Name),
				InstanceType:    deref(order.Properties.DisplayName),
				DaysUntilExpiry: daysDiff,
			}

			switch {
			case order.Properties.ProvisioningState != nil &&
				*order.Properties.ProvisioningState == armreservations.ProvisioningStateSucceeded &&
				expiry.After(now) && expiry.Before(next30Days):
				reservation.Status = "expiring"
			case expiry.After(prev30Days) && expiry.Before(now):
				reservation.Status = "expired"
			default:
				continue
			}
			result = append(result, reservation)
		}
	}

	return result, nil
}

func extractResourceGroup(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	for i, part := range parts {
		if strings.EqualFold(part, "resourceGroups") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
