package awsinventory

import (
	"go.uber.org/zap"

	awscloudwatch "github.com/elC0mpa/cloud-cost-doctor/service/aws/cloudwatch"
	awsec2 "github.com/elC0mpa/cloud-cost-doctor/service/aws/ec2"
	awselb "github.com/elC0mpa/cloud-cost-doctor/service/aws/elb"
	awsrds "github.com/elC0mpa/cloud-cost-doctor/service/aws/rds"
	awss3 "github.com/elC0mpa/cloud-cost-doctor/service/aws/s3"
)

type service struct {
	region     string
	ec2Service awsec2.EC2Service
	rdsService awsrds.RDSService
	s3Service  awss3.S3Service
	elbService awselb.ELBService
	metrics    awscloudwatch.MetricsService
	logger     *zap.Logger
}

// metricConcurrency bounds parallel CloudWatch calls so large fleets do
// not trip API throttling
const metricConcurrency = 8
