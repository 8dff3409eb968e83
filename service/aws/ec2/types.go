package awsec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

type service struct {
	client *ec2.Client
	region string
}

type EC2Service interface {
	GetInstances(ctx context.Context) ([]model.Resource, error)
	GetUnattachedVolumes(ctx context.Context) ([]model.Resource, error)
	GetUnassociatedAddresses(ctx context.Context) ([]model.Resource, error)
	GetExpiringReservations(ctx context.Context) ([]model.Reservation, error)
}
