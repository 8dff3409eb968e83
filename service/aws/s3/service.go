package awss3

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func NewService(awsconfig aws.Config, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := s3.NewFromConfig(awsconfig)
	return &service{
		client: client,
		region: awsconfig.Region,
		logger: logger,
	}
}

// GetBuckets lists the buckets homed in the configured region along with
// the lifecycle and versioning metadata the storage rules need. Buckets
// in other regions are skipped so each regional pass stays disjoint.
// A bucket whose metadata cannot be read (bucket policies frequently deny
// the lifecycle and versioning calls) is logged and skipped so the rest
// of the fleet still gets analyzed.
func (s *service) GetBuckets(ctx context.Context) ([]model.Resource, map[string]model.BucketMetadata, error) {
	output, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, nil, err
	}

	var resources []model.Resource
	metadata := make(map[string]model.BucketMetadata)

	for _, bucket := range output.Buckets {
		name := aws.ToString(bucket.Name)

		location, err := s.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
			Bucket: aws.String(name),
		})
		if err != nil {
			s.logger.Warn("skipping bucket with unreadable location",
				zap.String("bucket", name), zap.Error(err))
			continue
		}
		if bucketRegion(location.LocationConstraint) != s.region {
			continue
		}

		meta, err := s.bucketMetadata(ctx, name)
		if err != nil {
			s.logger.Warn("skipping bucket with unreadable metadata",
				zap.String("bucket", name), zap.Error(err))
			continue
		}
		if bucket.CreationDate != nil {
			meta.CreationDate = *bucket.CreationDate
		}

		resources = append(resources, model.Resource{
			ID:         name,
			Name:       name,
			Kind:       model.KindStorageBucket,
			Provider:   model.ProviderAWS,
			Region:     s.region,
			State:      model.StateAvailable,
			LaunchTime: bucket.CreationDate,
		})
		metadata[name] = meta
	}

	return resources, metadata, nil
}

func (s *service) bucketMetadata(ctx context.Context, name string) (model.BucketMetadata, error) {
	var meta model.BucketMetadata

	lifecycle, err := s.client.GetBucketLifecycleConfiguration(ctx, &s3.GetBucketLifecycleConfigurationInput{
		Bucket: aws.String(name),
	})
	switch {
	case err == nil:
		meta.HasLifecyclePolicy = len(lifecycle.Rules) > 0
		for _, rule := range lifecycle.Rules {
			if rule.Status != types.ExpirationStatusEnabled {
				continue
			}
			converted := model.LifecycleRule{
				NoncurrentVersionExpiration: rule.NoncurrentVersionExpiration != nil,
			}
			for _, t := range rule.Transitions {
				converted.Transitions = append(converted.Transitions, model.LifecycleTransition{
					Days:         int(aws.ToInt32(t.Days)),
					StorageClass: string(t.StorageClass),
				})
			}
			meta.Rules = append(meta.Rules, converted)
		}
	case isNoLifecycleError(err):
		// no policy configured
	default:
		return meta, err
	}

	versioning, err := s.client.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		return meta, err
	}
	meta.VersioningEnabled = versioning.Status == types.BucketVersioningStatusEnabled

	if lastModified, ok, err := s.newestObjectTime(ctx, name); err != nil {
		return meta, err
	} else if ok {
		meta.LastAccessed = &lastModified
	}

	return meta, nil
}

// newestObjectTime samples the first page of objects and returns the most
// recent modification time. An approximation of last access, since S3 does
// not expose read timestamps.
func (s *service) newestObjectTime(ctx context.Context, name string) (time.Time, bool, error) {
	output, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(name),
		MaxKeys: aws.Int32(1000),
	})
	if err != nil {
		return time.Time{}, false, err
	}

	var newest time.Time
	for _, object := range output.Contents {
		if object.LastModified != nil && object.LastModified.After(newest) {
			newest = *object.LastModified
		}
	}
	return newest, !newest.IsZero(), nil
}

func bucketRegion(constraint types.BucketLocationConstraint) string {
	// us-east-1 reports an empty location constraint
	if constraint == "" {
		return "us-east-1"
	}
	return string(constraint)
}

func isNoLifecycleError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NoSuchLifecycleConfiguration"
	}
	return false
}
