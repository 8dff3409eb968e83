package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	"github.com/elC0mpa/cloud-cost-doctor/service/aggregator"
	"github.com/elC0mpa/cloud-cost-doctor/service/report"
	"github.com/elC0mpa/cloud-cost-doctor/service/reserved"
	"github.com/elC0mpa/cloud-cost-doctor/service/rules"
	"github.com/elC0mpa/cloud-cost-doctor/utils"
)

func NewService(providers []Provider, ruleset []rules.Rule, grouper reserved.Grouper, reporter report.ReportService, logger *zap.Logger) *orchestratorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orchestratorService{
		providers: providers,
		ruleset:   ruleset,
		grouper:   grouper,
		reporter:  reporter,
		logger:    logger,
	}
}

func (s *orchestratorService) Orchestrate(flags model.Flags) error {
	if flags.Costs {
		return s.costsWorkflow()
	}
	if flags.Trend {
		return s.trendWorkflow()
	}
	return s.checkupWorkflow(flags)
}

// checkupWorkflow is the default: collect inventories, classify, group,
// and rank. Providers run in parallel and fail independently.
func (s *orchestratorService) checkupWorkflow(flags model.Flags) error {
	ctx := context.Background()
	results := make([]model.ProviderCheckupResult, len(s.providers))

	g := new(errgroup.Group)
	for i, provider := range s.providers {
		i, provider := i, provider
		g.Go(func() error {
			results[i] = s.checkupProvider(ctx, provider)
			return nil
		})
	}
	_ = g.Wait()

	utils.SortProviderCheckupResults(results)
	utils.StopSpinner()

	if len(results) == 1 {
		result := results[0]
		if result.Error != nil {
			return result.Error
		}
		utils.DrawRecommendationTable(result.AccountID, result.Recommendations, result.TotalMonthly)
		utils.DrawReservationTable(result.Reservations)
		summary := aggregator.Summarize(result.Recommendations)
		utils.DrawSavingsChart(summary.ByType)
	} else {
		utils.DrawMultiCloudCheckup(results)
	}

	if flags.Report != "" {
		built := s.reporter.Build(results)
		path, err := s.reporter.Write(built, report.Format(flags.Report))
		if err != nil {
			return err
		}
		s.logger.Info("report written", zap.String("path", path))
	}
	return nil
}

func (s *orchestratorService) checkupProvider(ctx context.Context, provider Provider) model.ProviderCheckupResult {
	result := model.ProviderCheckupResult{Provider: provider.Name}

	account, err := provider.Identity.GetAccountInfo(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to resolve account: %w", err)
		return result
	}
	result.AccountID = account.AccountID

	inv, err := provider.Inventory.CollectInventory(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to collect inventory: %w", err)
		return result
	}

	reservations, err := provider.Inventory.GetExpiringReservations(ctx)
	if err != nil {
		s.logger.Warn("failed to list expiring reservations",
			zap.String("provider", provider.Name),
			zap.Error(err))
	}
	result.Reservations = reservations

	classified := rules.Evaluate(s.ruleset, inv, time.Now())
	commitments := s.grouper.Group(inv)

	summary := aggregator.Summarize(classified, commitments)
	result.Recommendations = summary.Recommendations
	result.TotalMonthly = summary.TotalMonthly

	s.logger.Debug("provider checkup complete",
		zap.String("provider", provider.Name),
		zap.Int("resources", len(inv.Resources)),
		zap.Int("recommendations", len(result.Recommendations)))
	return result
}

func (s *orchestratorService) costsWorkflow() error {
	ctx := context.Background()
	results := s.collectCosts(ctx, false)

	utils.SortProviderCostResults(results)
	utils.StopSpinner()

	if len(results) == 1 {
		result := results[0]
		if result.Error != nil {
			return result.Error
		}
		utils.DrawCostTable(result.AccountID, result.LastTotalCost, result.CurrentTotalCost, result.LastMonthData, result.CurrentMonthData)
		return nil
	}

	utils.DrawMultiCloudCostTable(results)
	return nil
}

func (s *orchestratorService) trendWorkflow() error {
	ctx := context.Background()
	results := s.collectCosts(ctx, true)

	utils.SortProviderCostResults(results)
	utils.StopSpinner()

	if len(results) == 1 {
		result := results[0]
		if result.Error != nil {
			return result.Error
		}
		utils.DrawTrendChart(result.AccountID, result.TrendData)
		return nil
	}

	utils.DrawMultiCloudTrendChart(results)
	return nil
}

func (s *orchestratorService) collectCosts(ctx context.Context, trend bool) []model.ProviderCostResult {
	var costProviders []Provider
	for _, provider := range s.providers {
		if provider.Cost != nil {
			costProviders = append(costProviders, provider)
		}
	}

	results := make([]model.ProviderCostResult, len(costProviders))
	g := new(errgroup.Group)
	for i, provider := range costProviders {
		i, provider := i, provider
		g.Go(func() error {
			if trend {
				results[i] = s.trendProvider(ctx, provider)
			} else {
				results[i] = s.costsProvider(ctx, provider)
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *orchestratorService) costsProvider(ctx context.Context, provider Provider) model.ProviderCostResult {
	result := model.ProviderCostResult{Provider: provider.Name}

	account, err := provider.Identity.GetAccountInfo(ctx)
	if err != nil {
		result.Error = err
		return result
	}
	result.AccountID = account.AccountID

	if result.CurrentMonthData, err = provider.Cost.GetCurrentMonthCostsByService(ctx); err != nil {
		result.Error = err
		return result
	}
	if result.LastMonthData, err = provider.Cost.GetLastMonthCostsByService(ctx); err != nil {
		result.Error = err
		return result
	}

	currentTotal, err := provider.Cost.GetCurrentMonthTotalCosts(ctx)
	if err != nil {
		result.Error = err
		return result
	}
	result.CurrentTotalCost = *currentTotal

	lastTotal, err := provider.Cost.GetLastMonthTotalCosts(ctx)
	if err != nil {
		result.Error = err
		return result
	}
	result.LastTotalCost = *lastTotal

	return result
}

func (s *orchestratorService) trendProvider(ctx context.Context, provider Provider) model.ProviderCostResult {
	result := model.ProviderCostResult{Provider: provider.Name}

	account, err := provider.Identity.GetAccountInfo(ctx)
	if err != nil {
		result.Error = err
		return result
	}
	result.AccountID = account.AccountID

	if result.TrendData, err = provider.Cost.GetLastSixMonthsCosts(ctx); err != nil {
		result.Error = err
	}
	return result
}
