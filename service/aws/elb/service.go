package awselb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func NewService(awsconfig aws.Config) *service {
	client := elb.NewFromConfig(awsconfig)
	return &service{
		client: client,
		region: awsconfig.Region,
	}
}

// GetOrphanedLoadBalancers returns ALBs and NLBs no target group points
// at. They route nothing but still bill by the hour.
func (s *service) GetOrphanedLoadBalancers(ctx context.Context) ([]model.Resource, error) {
	lbOutput, err := s.client.DescribeLoadBalancers(ctx, &elb.DescribeLoadBalancersInput{})
	if err != nil {
		return nil, err
	}

	tgOutput, err := s.client.DescribeTargetGroups(ctx, &elb.DescribeTargetGroupsInput{})
	if err != nil {
		return nil, err
	}

	usedLbArns := make(map[string]bool)
	for _, tg := range tgOutput.TargetGroups {
		for _, lbArn := range tg.LoadBalancerArns {
			usedLbArns[lbArn] = true
		}
	}

	var resources []model.Resource
	for _, lb := range lbOutput.LoadBalancers {
		if lb.Type != types.LoadBalancerTypeEnumApplication && lb.Type != types.LoadBalancerTypeEnumNetwork {
			continue
		}
		arn := aws.ToString(lb.LoadBalancerArn)
		if usedLbArns[arn] {
			continue
		}
		resources = append(resources, model.Resource{
			ID:         arn,
			Name:       aws.ToString(lb.LoadBalancerName),
			Kind:       model.KindLoadBalancer,
			Provider:   model.ProviderAWS,
			Region:     s.region,
			State:      model.StateAvailable,
			PowerState: string(lb.Type),
			LaunchTime: lb.CreatedTime,
		})
	}
	return resources, nil
}
