package awselb

import (
	"context"

	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

type service struct {
	client *elb.Client
	region string
}

type ELBService interface {
	GetOrphanedLoadBalancers(ctx context.Context) ([]model.Resource, error)
}
