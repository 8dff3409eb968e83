package awsrds

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

type service struct {
	client *rds.Client
	region string
}

type RDSService interface {
	GetDatabaseInstances(ctx context.Context) ([]model.Resource, error)
}
