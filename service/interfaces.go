package service

import (
	"context"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

// IdentityService provides cloud account/project identity information
type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
}

// CostService provides billing and cost analysis
type CostService interface {
	GetCurrentMonthCostsByService(ctx context.Context) (*model.CostInfo, error)
	GetLastMonthCostsByService(ctx context.Context) (*model.CostInfo, error)
	GetCurrentMonthTotalCosts(ctx context.Context) (*string, error)
	GetLastMonthTotalCosts(ctx context.Context) (*string, error)
	GetLastSixMonthsCosts(ctx context.Context) ([]model.CostInfo, error)
}

// InventoryService shapes one provider's resources, utilization, and
// storage metadata into the form the recommendation engine consumes
type InventoryService interface {
	CollectInventory(ctx context.Context) (model.Inventory, error)
	GetExpiringReservations(ctx context.Context) ([]model.Reservation, error)
}
