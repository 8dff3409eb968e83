package awscloudwatch

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func NewService(awsconfig aws.Config, lookbackDays int) *service {
	client := cloudwatch.NewFromConfig(awsconfig)
	return &service{
		client:       client,
		lookbackDays: lookbackDays,
	}
}

// GetInstanceUtilization averages EC2 CPU over the lookback window. An
// instance with no datapoints yields an empty summary, never a zero.
func (s *service) GetInstanceUtilization(ctx context.Context, instanceID string) (model.UtilizationSummary, error) {
	summary := model.UtilizationSummary{}

	avg, ok, err := s.averageStatistic(ctx, "AWS/EC2", "CPUUtilization", []types.Dimension{
		{Name: aws.String("InstanceId"), Value: aws.String(instanceID)},
	}, time.Hour)
	if err != nil {
		return nil, err
	}
	if ok {
		summary[model.MetricCPUUtilization] = avg
	}
	return summary, nil
}

// GetDatabaseUtilization averages RDS CPU and connection counts
func (s *service) GetDatabaseUtilization(ctx context.Context, dbInstanceID string) (model.UtilizationSummary, error) {
	summary := model.UtilizationSummary{}
	dimensions := []types.Dimension{
		{Name: aws.String("DBInstanceIdentifier"), Value: aws.String(dbInstanceID)},
	}

	cpu, ok, err := s.averageStatistic(ctx, "AWS/RDS", "CPUUtilization", dimensions, time.Hour)
	if err != nil {
		return nil, err
	}
	if ok {
		summary[model.MetricCPUUtilization] = cpu
	}

	conns, ok, err := s.averageStatistic(ctx, "AWS/RDS", "DatabaseConnections", dimensions, time.Hour)
	if err != nil {
		return nil, err
	}
	if ok {
		summary[model.MetricConnections] = conns
	}
	return summary, nil
}

// GetBucketUtilization reads the daily S3 storage metrics. CloudWatch only
// publishes these once a day, so the period is fixed at 24 hours.
func (s *service) GetBucketUtilization(ctx context.Context, bucketName string) (model.UtilizationSummary, error) {
	summary := model.UtilizationSummary{}

	size, ok, err := s.averageStatistic(ctx, "AWS/S3", "BucketSizeBytes", []types.Dimension{
		{Name: aws.String("BucketName"), Value: aws.String(bucketName)},
		{Name: aws.String("StorageType"), Value: aws.String("StandardStorage")},
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	if ok {
		summary[model.MetricBucketSize] = size
	}

	objects, ok, err := s.averageStatistic(ctx, "AWS/S3", "NumberOfObjects", []types.Dimension{
		{Name: aws.String("BucketName"), Value: aws.String(bucketName)},
		{Name: aws.String("StorageType"), Value: aws.String("AllStorageTypes")},
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	if ok {
		summary[model.MetricObjectCount] = objects
	}
	return summary, nil
}

func (s *service) averageStatistic(ctx context.Context, namespace, metricName string, dimensions []types.Dimension, period time.Duration) (float64, bool, error) {
	now := time.Now()
	output, err := s.client.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(namespace),
		MetricName: aws.String(metricName),
		Dimensions: dimensions,
		StartTime:  aws.Time(now.Add(-time.Duration(s.lookbackDays) * 24 * time.Hour)),
		EndTime:    aws.Time(now),
		Period:     aws.Int32(int32(period.Seconds())),
		Statistics: []types.Statistic{types.StatisticAverage},
	})
	if err != nil {
		return 0, false, err
	}
	if len(output.Datapoints) == 0 {
		return 0, false, nil
	}

	var sum float64
	for _, dp := range output.Datapoints {
		sum += aws.ToFloat64(dp.Average)
	}
	return sum / float64(len(output.Datapoints)), true, nil
}
