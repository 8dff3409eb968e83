package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/elC0mpa/cloud-cost-doctor/cmd/mcp/response"
	"github.com/elC0mpa/cloud-cost-doctor/service"
	awsconfig "github.com/elC0mpa/cloud-cost-doctor/service/aws/config"
	awscostexplorer "github.com/elC0mpa/cloud-cost-doctor/service/aws/costexplorer"
	awssts "github.com/elC0mpa/cloud-cost-doctor/service/aws/sts"
	azurecompute "github.com/elC0mpa/cloud-cost-doctor/service/azure/compute"
	azurecostmanagement "github.com/elC0mpa/cloud-cost-doctor/service/azure/costmanagement"
	azureidentity "github.com/elC0mpa/cloud-cost-doctor/service/azure/identity"
	azureinventory "github.com/elC0mpa/cloud-cost-doctor/service/azure/inventory"
	azuremonitor "github.com/elC0mpa/cloud-cost-doctor/service/azure/monitor"
	gcpbilling "github.com/elC0mpa/cloud-cost-doctor/service/gcp/billing"
	gcpcompute "github.com/elC0mpa/cloud-cost-doctor/service/gcp/compute"
	gcpidentity "github.com/elC0mpa/cloud-cost-doctor/service/gcp/identity"
	gcpinventory "github.com/elC0mpa/cloud-cost-doctor/service/gcp/inventory"
)

// RegisterMultiCloudTools registers cross-provider aggregation tools
func RegisterMultiCloudTools(s *server.MCPServer, awsRegion, awsProfile, gcpProjectID, gcpBillingAccount, azureSubscriptionID string) {
	s.AddTool(
		mcp.NewTool("multicloud_get_cost_summary",
			mcp.WithDescription("Get current and last month costs across all configured cloud providers with a combined total"),
		),
		makeMultiCloudCostSummaryHandler(awsRegion, awsProfile, gcpProjectID, gcpBillingAccount, azureSubscriptionID),
	)

	s.AddTool(
		mcp.NewTool("multicloud_get_savings_recommendations",
			mcp.WithDescription("Run the savings analysis across all configured cloud providers and return recommendations ranked by estimated monthly savings"),
		),
		makeMultiCloudRecommendationsHandler(awsRegion, awsProfile, gcpProjectID, azureSubscriptionID),
	)
}

func makeMultiCloudCostSummaryHandler(awsRegion, awsProfile, gcpProjectID, gcpBillingAccount, azureSubscriptionID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var (
			mu        sync.Mutex
			wg        sync.WaitGroup
			summaries []response.ProviderCostSummary
		)

		collect := func(summary response.ProviderCostSummary) {
			mu.Lock()
			summaries = append(summaries, summary)
			mu.Unlock()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			collect(awsCostSummary(ctx, awsRegion, awsProfile))
		}()

		if azureSubscriptionID != "" {
			wg.Add(1)
			go func() {
				defer wg.Done()
				collect(azureCostSummary(ctx, azureSubscriptionID))
			}()
		}

		if gcpProjectID != "" && gcpBillingAccount != "" {
			wg.Add(1)
			go func() {
				defer wg.Done()
				collect(gcpCostSummary(ctx, gcpProjectID, gcpBillingAccount))
			}()
		}

		wg.Wait()

		resp := response.MultiCloudCostSummary{
			Providers: summaries,
			Currency:  "USD",
		}
		for _, s := range summaries {
			resp.Total += s.CurrentMonthCost
		}

		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeMultiCloudRecommendationsHandler(awsRegion, awsProfile, gcpProjectID, azureSubscriptionID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var (
			mu        sync.Mutex
			wg        sync.WaitGroup
			summaries []response.CheckupSummary
		)

		collect := func(provider string, summary *response.CheckupSummary, err error) {
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summaries = append(summaries, response.CheckupSummary{
					Provider:             provider,
					Recommendations:      []response.Recommendation{},
					ExpiringReservations: []response.Reservation{},
					Error:                err.Error(),
				})
				return
			}
			summaries = append(summaries, *summary)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			summary, err := awsCheckupSummary(ctx, awsRegion, awsProfile)
			collect("aws", summary, err)
		}()

		if azureSubscriptionID != "" {
			wg.Add(1)
			go func() {
				defer wg.Done()
				summary, err := azureCheckupSummary(ctx, azureSubscriptionID)
				collect("azure", summary, err)
			}()
		}

		if gcpProjectID != "" {
			wg.Add(1)
			go func() {
				defer wg.Done()
				summary, err := gcpCheckupSummary(ctx, gcpProjectID)
				collect("gcp", summary, err)
			}()
		}

		wg.Wait()

		resp := response.MultiCloudCheckupSummary{Providers: summaries}
		for _, s := range summaries {
			resp.TotalMonthlySavings += s.TotalMonthlySavings
		}

		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func awsCostSummary(ctx context.Context, region, profile string) response.ProviderCostSummary {
	summary := response.ProviderCostSummary{Provider: "aws", Currency: "USD"}

	awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
	if err != nil {
		summary.Error = err.Error()
		return summary
	}

	if info, err := awssts.NewService(awsCfg).GetAccountInfo(ctx); err == nil {
		summary.AccountID = info.AccountID
	}

	return fillCostSummary(ctx, summary, awscostexplorer.NewService(awsCfg))
}

func azureCostSummary(ctx context.Context, subscriptionID string) response.ProviderCostSummary {
	summary := response.ProviderCostSummary{Provider: "azure", Currency: "USD"}

	credential, subID, err := azureCredential(subscriptionID)
	if err != nil {
		summary.Error = err.Error()
		return summary
	}
	summary.AccountID = subID

	costSvc, err := azurecostmanagement.NewService(subID, credential)
	if err != nil {
		summary.Error = err.Error()
		return summary
	}

	return fillCostSummary(ctx, summary, costSvc)
}

func gcpCostSummary(ctx context.Context, projectID, billingAccount string) response.ProviderCostSummary {
	summary := response.ProviderCostSummary{Provider: "gcp", AccountID: projectID, Currency: "USD"}

	billingSvc, err := gcpbilling.NewService(ctx, projectID, billingAccount)
	if err != nil {
		summary.Error = err.Error()
		return summary
	}
	defer billingSvc.Close()

	return fillCostSummary(ctx, summary, billingSvc)
}

func fillCostSummary(ctx context.Context, summary response.ProviderCostSummary, costSvc service.CostService) response.ProviderCostSummary {
	currentTotal, err := costSvc.GetCurrentMonthTotalCosts(ctx)
	if err != nil {
		summary.Error = err.Error()
		return summary
	}
	lastTotal, err := costSvc.GetLastMonthTotalCosts(ctx)
	if err != nil {
		summary.Error = err.Error()
		return summary
	}

	summary.CurrentMonthCost, summary.Currency = response.ParseTotalCostString(*currentTotal)
	summary.LastMonthCost, _ = response.ParseTotalCostString(*lastTotal)
	summary.Difference = summary.CurrentMonthCost - summary.LastMonthCost
	if summary.LastMonthCost > 0 {
		summary.PercentChange = (summary.Difference / summary.LastMonthCost) * 100
	}
	return summary
}

func awsCheckupSummary(ctx context.Context, region, profile string) (*response.CheckupSummary, error) {
	awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to configure AWS: %w", err)
	}
	return runCheckup(ctx, "aws", awssts.NewService(awsCfg), newAWSInventory(awsCfg, region))
}

func azureCheckupSummary(ctx context.Context, subscriptionID string) (*response.CheckupSummary, error) {
	credential, subID, err := azureCredential(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to configure Azure: %w", err)
	}
	identitySvc, err := azureidentity.NewService(subID, credential)
	if err != nil {
		return nil, err
	}
	computeSvc, err := azurecompute.NewService(subID, credential)
	if err != nil {
		return nil, err
	}
	monitorSvc, err := azuremonitor.NewService(credential, defaultLookbackDays)
	if err != nil {
		return nil, err
	}
	return runCheckup(ctx, "azure", identitySvc, azureinventory.NewService(computeSvc, monitorSvc, logger))
}

func gcpCheckupSummary(ctx context.Context, projectID string) (*response.CheckupSummary, error) {
	identitySvc, err := gcpidentity.NewService(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to configure GCP: %w", err)
	}
	computeSvc, err := gcpcompute.NewService(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return runCheckup(ctx, "gcp", identitySvc, gcpinventory.NewService(computeSvc))
}
