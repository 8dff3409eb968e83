package awscloudwatch

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

type service struct {
	client       *cloudwatch.Client
	lookbackDays int
}

type MetricsService interface {
	GetInstanceUtilization(ctx context.Context, instanceID string) (model.UtilizationSummary, error)
	GetDatabaseUtilization(ctx context.Context, dbInstanceID string) (model.UtilizationSummary, error)
	GetBucketUtilization(ctx context.Context, bucketName string) (model.UtilizationSummary, error)
}
