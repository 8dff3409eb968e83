package gcpidentity

import (
	"context"

	"google.golang.org/api/cloudresourcemanager/v1"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

type service struct {
	projectID string
	client    *cloudresourcemanager.Service
}

type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
	GetProjectInfo(ctx context.Context) (*cloudresourcemanager.Project, error)
}
