package azurecompute

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

type service struct {
	subscriptionID     string
	vmClient           *armcompute.VirtualMachinesClient
	disksClient        *armcompute.DisksClient
	publicIPClient     *armnetwork.PublicIPAddressesClient
	reservationsClient *armreservations.ReservationOrderClient
}

type ComputeService interface {
	GetVirtualMachines(ctx context.Context) ([]model.Resource, error)
	GetUnattachedDisks(ctx context.Context) ([]model.Resource, error)
	GetUnassociatedPublicIPs(ctx context.Context) ([]model.Resource, error)
	GetExpiringReservations(ctx context.Context) ([]model.Reservation, error)
}

// Credential is passed to allow reuse across services
type Credential = azidentity.DefaultAzureCredential
