package awss3

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeS3 struct {
	buckets         []types.Bucket
	locationErrs    map[string]error
	versioningErrs  map[string]error
	listObjectsErrs map[string]error
}

func (f *fakeS3) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	return &s3.ListBucketsOutput{Buckets: f.buckets}, nil
}

func (f *fakeS3) GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error) {
	if err := f.locationErrs[aws.ToString(params.Bucket)]; err != nil {
		return nil, err
	}
	return &s3.GetBucketLocationOutput{}, nil
}

func (f *fakeS3) GetBucketLifecycleConfiguration(ctx context.Context, params *s3.GetBucketLifecycleConfigurationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLifecycleConfigurationOutput, error) {
	return &s3.GetBucketLifecycleConfigurationOutput{}, nil
}

func (f *fakeS3) GetBucketVersioning(ctx context.Context, params *s3.GetBucketVersioningInput, optFns ...func(*s3.Options)) (*s3.GetBucketVersioningOutput, error) {
	if err := f.versioningErrs[aws.ToString(params.Bucket)]; err != nil {
		return nil, err
	}
	return &s3.GetBucketVersioningOutput{Status: types.BucketVersioningStatusEnabled}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if err := f.listObjectsErrs[aws.ToString(params.Bucket)]; err != nil {
		return nil, err
	}
	modified := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	return &s3.ListObjectsV2Output{
		Contents: []types.Object{{LastModified: &modified}},
	}, nil
}

func newBucket(name string) types.Bucket {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return types.Bucket{Name: aws.String(name), CreationDate: &created}
}

func TestGetBucketsSkipsUnreadableBuckets(t *testing.T) {
	denied := errors.New("api error AccessDenied")
	fake := &fakeS3{
		buckets: []types.Bucket{
			newBucket("no-location"),
			newBucket("no-versioning"),
			newBucket("no-listing"),
			newBucket("readable"),
		},
		locationErrs:    map[string]error{"no-location": denied},
		versioningErrs:  map[string]error{"no-versioning": denied},
		listObjectsErrs: map[string]error{"no-listing": denied},
	}
	svc := &service{client: fake, region: "us-east-1", logger: zap.NewNop()}

	resources, metadata, err := svc.GetBuckets(context.Background())
	require.NoError(t, err)

	require.Len(t, resources, 1)
	assert.Equal(t, "readable", resources[0].ID)

	meta, ok := metadata["readable"]
	require.True(t, ok)
	assert.True(t, meta.VersioningEnabled)
	require.NotNil(t, meta.LastAccessed)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), *meta.LastAccessed)
}

func TestGetBucketsSkipsOtherRegions(t *testing.T) {
	fake := &fakeS3{buckets: []types.Bucket{newBucket("homed-east")}}
	svc := &service{client: fake, region: "eu-west-1", logger: zap.NewNop()}

	resources, metadata, err := svc.GetBuckets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resources)
	assert.Empty(t, metadata)
}
