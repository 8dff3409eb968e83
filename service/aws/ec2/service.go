package awsec2

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	"github.com/elC0mpa/cloud-cost-doctor/utils"
)

func NewService(awsconfig aws.Config) *service {
	client := ec2.NewFromConfig(awsconfig)
	return &service{
		client: client,
		region: awsconfig.Region,
	}
}

// GetInstances enumerates every instance in the region, running and
// stopped. For stopped instances the transition timestamp is parsed out
// of the state transition reason when the API provides one.
func (s *service) GetInstances(ctx context.Context) ([]model.Resource, error) {
	var resources []model.Resource

	paginator := ec2.NewDescribeInstancesPaginator(s.client, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, reservation := range output.Reservations {
			for _, instance := range reservation.Instances {
				resources = append(resources, s.toResource(instance))
			}
		}
	}

	return resources, nil
}

func (s *service) toResource(instance types.Instance) model.Resource {
	res := model.Resource{
		ID:         aws.ToString(instance.InstanceId),
		Kind:       model.KindComputeInstance,
		Provider:   model.ProviderAWS,
		Region:     s.region,
		Size:       string(instance.InstanceType),
		Tags:       make(map[string]string, len(instance.Tags)),
		LaunchTime: instance.LaunchTime,
	}

	for _, tag := range instance.Tags {
		res.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	res.Name = res.Tags["Name"]
	if res.Name == "" {
		res.Name = res.ID
	}

	if instance.State != nil {
		res.PowerState = string(instance.State.Name)
		switch instance.State.Name {
		case types.InstanceStateNameRunning:
			res.State = model.StateRunning
		case types.InstanceStateNameStopped:
			res.State = model.StateStopped
			if stoppedAt, err := utils.ParseTransitionDate(aws.ToString(instance.StateTransitionReason)); err == nil {
				res.StateSince = &stoppedAt
			}
		default:
			res.State = model.StateOther
		}
	}

	return res
}

// GetUnattachedVolumes returns EBS volumes in the "available" state,
// meaning no instance has them attached
func (s *service) GetUnattachedVolumes(ctx context.Context) ([]model.Resource, error) {
	output, err := s.client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("status"),
				Values: []string{"available"},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	var resources []model.Resource
	for _, volume := range output.Volumes {
		resources = append(resources, model.Resource{
			ID:       aws.ToString(volume.VolumeId),
			Name:     aws.ToString(volume.VolumeId),
			Kind:     model.KindBlockVolume,
			Provider: model.ProviderAWS,
			Region:   s.region,
			State:    model.StateAvailable,
			SizeGB:   aws.ToInt32(volume.Size),
		})
	}
	return resources, nil
}

// GetUnassociatedAddresses returns Elastic IPs with no association, which
// AWS bills for while they sit idle
func (s *service) GetUnassociatedAddresses(ctx context.Context) ([]model.Resource, error) {
	output, err := s.client.DescribeAddresses(ctx, nil)
	if err != nil {
		return nil, err
	}

	var resources []model.Resource
	for _, address := range output.Addresses {
		if address.AssociationId != nil {
			continue
		}
		resources = append(resources, model.Resource{
			ID:       aws.ToString(address.AllocationId),
			Name:     aws.ToString(address.PublicIp),
			Kind:     model.KindPublicIP,
			Provider: model.ProviderAWS,
			Region:   s.region,
			State:    model.StateAvailable,
		})
	}
	return resources, nil
}

// GetExpiringReservations reports reserved instances expiring within 30
// days or expired within the last 30, so renewal gaps show up in reports
func (s *service) GetExpiringReservations(ctx context.Context) ([]model.Reservation, error) {
	input := &ec2.DescribeReservedInstancesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("state"),
				Values: []string{"active", "retired"},
			},
		},
	}

	output, err := s.client.DescribeReservedInstances(ctx, input)
	if err != nil {
		return nil, err
	}

	var results []model.Reservation

	now := time.Now()
	next30Days := now.Add(30 * 24 * time.Hour)
	prev30Days := now.Add(-30 * 24 * time.Hour)

	for _, ri := range output.ReservedInstances {
		if ri.End == nil {
			continue
		}

		endTime := *ri.End
		daysDiff := int(endTime.Sub(now).Hours() / 24)

		if ri.State == types.ReservedInstanceStateActive && endTime.Before(next30Days) {
			results = append(results, model.Reservation{
				ID:              aws.ToString(ri.ReservedInstancesId),
				InstanceType:    string(ri.InstanceType),
				Status:          "expiring",
				DaysUntilExpiry: daysDiff,
			})
		}

		if endTime.After(prev30Days) && endTime.Before(now) {
			results = append(results, model.Reservation{
				ID:              aws.ToString(ri.ReservedInstancesId),
				InstanceType:    string(ri.InstanceType),
				Status:          "expired",
				DaysUntilExpiry: daysDiff,
			})
		}
	}

	return results, nil
}
