package gcpconfig

import (
	"context"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/cloudbilling/v1"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
)

func NewService(projectID string) *service {
	return &service{
		projectID: projectID,
	}
}

// GetCredentials resolves Application Default Credentials, which covers
// GOOGLE_APPLICATION_CREDENTIALS, gcloud auth, and GCE service accounts
func (s *service) GetCredentials(ctx context.Context) (*google.Credentials, error) {
	return google.FindDefaultCredentials(ctx,
		cloudbilling.CloudBillingScope,
		cloudresourcemanager.CloudPlatformReadOnlyScope,
		compute.ComputeReadonlyScope,
	)
}

func (s *service) GetProjectID() string {
	return s.projectID
}
