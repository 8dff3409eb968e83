package awsrds

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func NewService(awsconfig aws.Config) *service {
	client := rds.NewFromConfig(awsconfig)
	return &service{
		client: client,
		region: awsconfig.Region,
	}
}

// GetDatabaseInstances enumerates RDS instances in the region. RDS reports
// status as a free-form string, so only the two states the rules care
// about are mapped.
func (s *service) GetDatabaseInstances(ctx context.Context) ([]model.Resource, error) {
	var resources []model.Resource

	paginator := rds.NewDescribeDBInstancesPaginator(s.client, &rds.DescribeDBInstancesInput{})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, db := range output.DBInstances {
			res := model.Resource{
				ID:         aws.ToString(db.DBInstanceIdentifier),
				Name:       aws.ToString(db.DBInstanceIdentifier),
				Kind:       model.KindManagedDatabase,
				Provider:   model.ProviderAWS,
				Region:     s.region,
				Size:       aws.ToString(db.DBInstanceClass),
				PowerState: aws.ToString(db.DBInstanceStatus),
				LaunchTime: db.InstanceCreateTime,
			}
			switch aws.ToString(db.DBInstanceStatus) {
			case "available":
				res.State = model.StateRunning
			case "stopped":
				res.State = model.StateStopped
			default:
				res.State = model.StateOther
			}
			resources = append(resources, res)
		}
	}

	return resources, nil
}
