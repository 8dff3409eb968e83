package azurecostmanagement

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func NewService(subscriptionID string, credential *Credential) (*service, error) {
	client, err := armcostmanagement.NewQueryClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}

	return &service{
		subscriptionID: subscriptionID,
		client:         client,
	}, nil
}

func (s *service) GetCurrentMonthCostsByService(ctx context.Context) (*model.CostInfo, error) {
	return s.getMonthCostsByService(ctx, time.Now())
}

func (s *service) GetLastMonthCostsByService(ctx context.Context) (*model.CostInfo, error) {
	return s.getMonthCostsByService(ctx, time.Now().AddDate(0, -1, 0))
}

func (s *service) getMonthCostsByService(ctx context.Context, endDate time.Time) (*model.CostInfo, error) {
	startDate := firstDayOfMonth(endDate)

	resp, err := s.runQuery(ctx, startDate, endDate, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query costs: %w", err)
	}

	costGroups := make(model.CostGroup)
	if resp.Properties != nil {
		for _, row := range resp.Properties.Rows {
			// row format with grouping: [cost, serviceName, ...]
			if len(row) < 2 {
				continue
			}
			cost, okCost := row[0].(float64)
			serviceName, okName := row[1].(string)
			if !okCost || !okName || cost <= 0 {
				continue
			}
			existing := costGroups[serviceName]
			costGroups[serviceName] = struct {
				Amount float64
				Unit   string
			}{
				Amount: existing.Amount + cost,
				Unit:   "USD",
			}
		}
	}

	startStr := startDate.Format("2006-01-02")
	endStr := endDate.Format("2006-01-02")
	return &model.CostInfo{
		DateInterval: model.DateInterval{
			Start: &startStr,
			End:   &endStr,
		},
		CostGroup: costGroups,
	}, nil
}

func (s *service) GetCurrentMonthTotalCosts(ctx context.Context) (*string, error) {
	return s.getMonthTotalCosts(ctx, time.Now())
}

func (s *service) GetLastMonthTotalCosts(ctx context.Context) (*string, error) {
	return s.getMonthTotalCosts(ctx, time.Now().AddDate(0, -1, 0))
}

func (s *service) getMonthTotalCosts(ctx context.Context, endDate time.Time) (*string, error) {
	resp, err := s.runQuery(ctx, firstDayOfMonth(endDate), endDate, false)
	if err != nil {
		return nil, fmt.Errorf("failed to query total costs: %w", err)
	}

	result := fmt.Sprintf("%.2f USD", sumCosts(resp))
	return &result, nil
}

// GetLastSixMonthsCosts queries each month separately since the query API
// has no monthly granularity for custom timeframes. A month that fails to
// query is skipped instead of aborting the trend.
func (s *service) GetLastSixMonthsCosts(ctx context.Context) ([]model.CostInfo, error) {
	var monthlyCosts []model.CostInfo

	for i := 6; i >= 1; i-- {
		monthDate := time.Now().AddDate(0, -i, 0)
		startDate := firstDayOfMonth(monthDate)
		endDate := lastDayOfMonth(monthDate)

		resp, err := s.runQuery(ctx, startDate, endDate, false)
		if err != nil {
			continue
		}

		startStr := startDate.Format("2006-01-02")
		endStr := endDate.Format("2006-01-02")
		monthlyCosts = append(monthlyCosts, model.CostInfo{
			DateInterval: model.DateInterval{
				Start: &startStr,
				End:   &endStr,
			},
			CostGroup: model.CostGroup{
				"Total": {
					Amount: sumCosts(resp),
					Unit:   "USD",
				},
			},
		})
	}

	return monthlyCosts, nil
}

func (s *service) runQuery(ctx context.Context, startDate, endDate time.Time, groupByService bool) (armcostmanagement.QueryClientUsageResponse, error) {
	dataset := &armcostmanagement.QueryDataset{
		Granularity: to.Ptr(armcostmanagement.GranularityTypeDaily),
		Aggregation: map[string]*armcostmanagement.QueryAggregation{
			"totalCost": {
				Name:     to.Ptr("Cost"),
				Function: to.Ptr(armcostmanagement.FunctionTypeSum),
			},
		},
	}
	if groupByService {
		dataset.Grouping = []*armcostmanagement.QueryGrouping{
			{
				Type: to.Ptr(armcostmanagement.QueryColumnTypeDimension),
				Name: to.Ptr("ServiceName"),
			},
		}
	}

	queryDefinition := armcostmanagement.QueryDefinition{
		Type:      to.Ptr(armcostmanagement.ExportTypeActualCost),
		Timeframe: to.Ptr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: to.Ptr(startDate),
			To:   to.Ptr(endDate),
		},
		Dataset: dataset,
	}

	scope := fmt.Sprintf("/subscriptions/%s", s.subscriptionID)
	return s.client.Usage(ctx, scope, queryDefinition, nil)
}

func sumCosts(resp armcostmanagement.QueryClientUsageResponse) float64 {
	var total float64
	if resp.Properties == nil {
		return 0
	}
	for _, row := range resp.Properties.Rows {
		if len(row) < 1 {
			continue
		}
		if cost, ok := row[0].(float64); ok {
			total += cost
		}
	}
	return total
}

func firstDayOfMonth(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month()+1, 0, 23, 59, 59, 0, time.UTC)
}
