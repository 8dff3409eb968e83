package gcpcompute

import (
	"context"

	"google.golang.org/api/compute/v1"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

type service struct {
	projectID     string
	computeClient *compute.Service
}

type ComputeService interface {
	GetInstances(ctx context.Context) ([]model.Resource, error)
	GetUnattachedDisks(ctx context.Context) ([]model.Resource, error)
	GetUnassignedExternalIPs(ctx context.Context) ([]model.Resource, error)
	GetExpiringCommitments(ctx context.Context) ([]model.Reservation, error)
}
