package awsinventory

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	awscloudwatch "github.com/elC0mpa/cloud-cost-doctor/service/aws/cloudwatch"
	awsec2 "github.com/elC0mpa/cloud-cost-doctor/service/aws/ec2"
	awselb "github.com/elC0mpa/cloud-cost-doctor/service/aws/elb"
	awsrds "github.com/elC0mpa/cloud-cost-doctor/service/aws/rds"
	awss3 "github.com/elC0mpa/cloud-cost-doctor/service/aws/s3"
)

func NewService(region string, ec2Service awsec2.EC2Service, rdsService awsrds.RDSService, s3Service awss3.S3Service, elbService awselb.ELBService, metrics awscloudwatch.MetricsService, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		region:     region,
		ec2Service: ec2Service,
		rdsService: rdsService,
		s3Service:  s3Service,
		elbService: elbService,
		metrics:    metrics,
		logger:     logger,
	}
}

// CollectInventory enumerates the region's resources in parallel and then
// fetches utilization for everything that can report it. A resource whose
// metrics cannot be read stays in the inventory without utilization, which
// the rules treat as insufficient evidence.
func (s *service) CollectInventory(ctx context.Context) (model.Inventory, error) {
	inv := model.Inventory{
		Provider:    model.ProviderAWS,
		Region:      s.region,
		Utilization: make(map[string]model.UtilizationSummary),
	}

	var (
		instances, databases, volumes, addresses, loadBalancers, buckets []model.Resource
		bucketMeta                                                       map[string]model.BucketMetadata
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		instances, err = s.ec2Service.GetInstances(gctx)
		return err
	})
	g.Go(func() (err error) {
		databases, err = s.rdsService.GetDatabaseInstances(gctx)
		return err
	})
	g.Go(func() (err error) {
		volumes, err = s.ec2Service.GetUnattachedVolumes(gctx)
		return err
	})
	g.Go(func() (err error) {
		addresses, err = s.ec2Service.GetUnassociatedAddresses(gctx)
		return err
	})
	g.Go(func() (err error) {
		loadBalancers, err = s.elbService.GetOrphanedLoadBalancers(gctx)
		return err
	})
	g.Go(func() (err error) {
		buckets, bucketMeta, err = s.s3Service.GetBuckets(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return inv, err
	}

	inv.Resources = append(inv.Resources, instances...)
	inv.Resources = append(inv.Resources, databases...)
	inv.Resources = append(inv.Resources, volumes...)
	inv.Resources = append(inv.Resources, addresses...)
	inv.Resources = append(inv.Resources, loadBalancers...)
	inv.Resources = append(inv.Resources, buckets...)
	inv.Buckets = bucketMeta

	s.collectUtilization(ctx, &inv)
	return inv, nil
}

func (s *service) collectUtilization(ctx context.Context, inv *model.Inventory) {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metricConcurrency)

	record := func(id string, summary model.UtilizationSummary, err error) {
		if err != nil {
			s.logger.Warn("failed to read utilization metrics",
				zap.String("resource", id),
				zap.Error(err))
			return
		}
		if len(summary) == 0 {
			return
		}
		mu.Lock()
		inv.Utilization[id] = summary
		mu.Unlock()
	}

	for _, res := range inv.Resources {
		res := res
		switch res.Kind {
		case model.KindComputeInstance:
			if res.State != model.StateRunning {
				continue
			}
			g.Go(func() error {
				summary, err := s.metrics.GetInstanceUtilization(gctx, res.ID)
				record(res.ID, summary, err)
				return nil
			})
		case model.KindManagedDatabase:
			if res.State != model.StateRunning {
				continue
			}
			g.Go(func() error {
				summary, err := s.metrics.GetDatabaseUtilization(gctx, res.ID)
				record(res.ID, summary, err)
				return nil
			})
		case model.KindStorageBucket:
			g.Go(func() error {
				summary, err := s.metrics.GetBucketUtilization(gctx, res.ID)
				record(res.ID, summary, err)
				return nil
			})
		}
	}

	_ = g.Wait()
}

func (s *service) GetExpiringReservations(ctx context.Context) ([]model.Reservation, error) {
	return s.ec2Service.GetExpiringReservations(ctx)
}
