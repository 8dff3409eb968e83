package awscostexplorer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

const costsAggregation = "UnblendedCost"

func NewService(awsconfig aws.Config) *service {
	client := costexplorer.NewFromConfig(awsconfig)
	return &service{
		client: client,
	}
}

func (s *service) GetCurrentMonthCostsByService(ctx context.Context) (*model.CostInfo, error) {
	return s.GetMonthCostsByService(ctx, time.Now())
}

func (s *service) GetLastMonthCostsByService(ctx context.Context) (*model.CostInfo, error) {
	return s.GetMonthCostsByService(ctx, time.Now().AddDate(0, -1, 0))
}

func (s *service) GetMonthCostsByService(ctx context.Context, endDate time.Time) (*model.CostInfo, error) {
	firstOfMonth := firstDayOfMonth(endDate)

	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod: &types.DateInterval{
			Start: aws.String(firstOfMonth.Format("2006-01-02")),
			End:   aws.String(endDate.Format("2006-01-02")),
		},
		Metrics: []string{costsAggregation},
		GroupBy: []types.GroupDefinition{
			{
				Key:  aws.String("SERVICE"),
				Type: types.GroupDefinitionTypeDimension,
			},
		},
	}

	output, err := s.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(output.ResultsByTime) == 0 {
		return nil, fmt.Errorf("cost explorer returned no results for %s", firstOfMonth.Format("2006-01"))
	}

	return &model.CostInfo{
		CostGroup: filterGroups(output.ResultsByTime[0].Groups),
		DateInterval: model.DateInterval{
			Start: output.ResultsByTime[0].TimePeriod.Start,
			End:   output.ResultsByTime[0].TimePeriod.End,
		},
	}, nil
}

func (s *service) GetCurrentMonthTotalCosts(ctx context.Context) (*string, error) {
	return s.getMonthTotalCosts(ctx, time.Now())
}

func (s *service) GetLastMonthTotalCosts(ctx context.Context) (*string, error) {
	return s.getMonthTotalCosts(ctx, time.Now().AddDate(0, -1, 0))
}

func (s *service) GetLastSixMonthsCosts(ctx context.Context) ([]model.CostInfo, error) {
	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod: &types.DateInterval{
			Start: aws.String(firstDayOfMonth(time.Now().AddDate(0, -6, 0)).Format("2006-01-02")),
			End:   aws.String(firstDayOfMonth(time.Now()).Format("2006-01-02")),
		},
		Metrics: []string{costsAggregation},
	}

	output, err := s.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, err
	}

	monthlyCosts := make([]model.CostInfo, 0, len(output.ResultsByTime))
	for _, timeResult := range output.ResultsByTime {
		amount, _ := strconv.ParseFloat(aws.ToString(timeResult.Total[costsAggregation].Amount), 64)
		costGroups := model.CostGroup{
			"Total": {
				Amount: amount,
				Unit:   aws.ToString(timeResult.Total[costsAggregation].Unit),
			},
		}
		monthlyCosts = append(monthlyCosts, model.CostInfo{
			DateInterval: model.DateInterval{
				Start: timeResult.TimePeriod.Start,
				End:   timeResult.TimePeriod.End,
			},
			CostGroup: costGroups,
		})
	}

	return monthlyCosts, nil
}

func (s *service) getMonthTotalCosts(ctx context.Context, endDate time.Time) (*string, error) {
	firstOfMonth := firstDayOfMonth(endDate)

	input := &costexplorer.GetCostAndUsageInput{
		Granularity: types.GranularityMonthly,
		TimePeriod: &types.DateInterval{
			Start: aws.String(firstOfMonth.Format("2006-01-02")),
			End:   aws.String(endDate.Format("2006-01-02")),
		},
		Metrics: []string{costsAggregation},
	}

	output, err := s.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(output.ResultsByTime) == 0 {
		return nil, fmt.Errorf("cost explorer returned no results for %s", firstOfMonth.Format("2006-01"))
	}

	totalInfo := output.ResultsByTime[0].Total[costsAggregation]
	amount, err := strconv.ParseFloat(aws.ToString(totalInfo.Amount), 64)
	if err != nil {
		return nil, fmt.Errorf("could not parse total amount: %w", err)
	}

	total := fmt.Sprintf("%.2f %s", amount, aws.ToString(totalInfo.Unit))
	return &total, nil
}

func firstDayOfMonth(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
}

// filterGroups drops zero-cost services and reshapes the rest
func filterGroups(results []types.Group) model.CostGroup {
	costGroups := make(model.CostGroup)
	for _, g := range results {
		metric, ok := g.Metrics[costsAggregation]
		if !ok || metric.Amount == nil {
			continue
		}
		amount, err := strconv.ParseFloat(*metric.Amount, 64)
		if err != nil || amount == 0 {
			continue
		}
		costGroups[g.Keys[0]] = struct {
			Amount float64
			Unit   string
		}{
			Amount: amount,
			Unit:   aws.ToString(metric.Unit),
		}
	}
	return costGroups
}
