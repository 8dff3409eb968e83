package azuremonitor

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/monitor/armmonitor"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func NewService(credential *Credential, lookbackDays int) (*service, error) {
	client, err := armmonitor.NewMetricsClient("", credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics client: %w", err)
	}

	return &service{
		client:       client,
		lookbackDays: lookbackDays,
	}, nil
}

// GetVMUtilization averages the Percentage CPU metric over the lookback
// window. A VM with no datapoints yields an empty summary.
func (s *service) GetVMUtilization(ctx context.Context, resourceID string) (model.UtilizationSummary, error) {
	now := time.Now().UTC()
	start := now.Add(-time.Duration(s.lookbackDays) * 24 * time.Hour)
	timespan := fmt.Sprintf("%s/%s", start.Format(time.RFC3339), now.Format(time.RFC3339))

	resp, err := s.client.List(ctx, resourceID, &armmonitor.MetricsClientListOptions{
		Timespan:    to.Ptr(timespan),
		Interval:    to.Ptr("PT1H"),
		Metricnames: to.Ptr("Percentage CPU"),
		Aggregation: to.Ptr("Average"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query VM metrics: %w", err)
	}

	var sum float64
	var count int
	for _, metric := range resp.Value {
		for _, series := range metric.Timeseries {
			for _, point := range series.Data {
				if point.Average == nil {
					continue
				}
				sum += *point.Average
				count++
			}
		}
	}

	summary := model.UtilizationSummary{}
	if count > 0 {
		summary[model.MetricCPUUtilization] = sum / float64(count)
	}
	return summary, nil
}
