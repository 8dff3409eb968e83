package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/elC0mpa/cloud-cost-doctor/cmd/mcp/response"
	azurecompute "github.com/elC0mpa/cloud-cost-doctor/service/azure/compute"
	azureconfig "github.com/elC0mpa/cloud-cost-doctor/service/azure/config"
	azurecostmanagement "github.com/elC0mpa/cloud-cost-doctor/service/azure/costmanagement"
	azureidentity "github.com/elC0mpa/cloud-cost-doctor/service/azure/identity"
	azureinventory "github.com/elC0mpa/cloud-cost-doctor/service/azure/inventory"
	azuremonitor "github.com/elC0mpa/cloud-cost-doctor/service/azure/monitor"
)

// RegisterAzureTools registers all Azure tools with the MCP server
func RegisterAzureTools(s *server.MCPServer, subscriptionID string) {
	s.AddTool(
		mcp.NewTool("azure_get_subscription_info",
			mcp.WithDescription("Get Azure subscription identity information including subscription ID and display name"),
		),
		makeAzureSubscriptionInfoHandler(subscriptionID),
	)

	s.AddTool(
		mcp.NewTool("azure_get_current_month_costs",
			mcp.WithDescription("Get Azure costs for the current month, broken down by service"),
		),
		makeAzureCurrentMonthCostsHandler(subscriptionID),
	)

	s.AddTool(
		mcp.NewTool("azure_get_cost_comparison",
			mcp.WithDescription("Compare Azure costs between current month and last month (same period), showing difference and percent change"),
		),
		makeAzureCostComparisonHandler(subscriptionID),
	)

	s.AddTool(
		mcp.NewTool("azure_get_cost_trend",
			mcp.WithDescription("Get Azure cost trend for the last 6 months with summary statistics"),
		),
		makeAzureCostTrendHandler(subscriptionID),
	)

	s.AddTool(
		mcp.NewTool("azure_get_savings_recommendations",
			mcp.WithDescription("Run a full Azure savings analysis: VM rightsizing, idle resources, unattached disks, unassociated public IPs, and reserved instance opportunities, ranked by estimated monthly savings"),
		),
		makeAzureRecommendationsHandler(subscriptionID),
	)

	s.AddTool(
		mcp.NewTool("azure_get_expiring_reservations",
			mcp.WithDescription("List Azure reservations that are expiring within 30 days or have recently expired"),
		),
		makeAzureExpiringReservationsHandler(subscriptionID),
	)
}

func azureCredential(subscriptionID string) (*azurecompute.Credential, string, error) {
	configSvc, err := azureconfig.NewService(subscriptionID)
	if err != nil {
		return nil, "", err
	}
	return configSvc.GetCredential(), configSvc.GetSubscriptionID(), nil
}

func makeAzureSubscriptionInfoHandler(subscriptionID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		credential, subID, err := azureCredential(subscriptionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure Azure: %v", err)), nil
		}

		identitySvc, err := azureidentity.NewService(subID, credential)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create identity service: %v", err)), nil
		}

		info, err := identitySvc.GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get subscription info: %v", err)), nil
		}

		resp := response.ConvertAccountInfo(info)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeAzureCurrentMonthCostsHandler(subscriptionID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		credential, subID, err := azureCredential(subscriptionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure Azure: %v", err)), nil
		}

		costSvc, err := azurecostmanagement.NewService(subID, credential)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create cost service: %v", err)), nil
		}

		costData, err := costSvc.GetCurrentMonthCostsByService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get costs: %v", err)), nil
		}

		resp := response.ConvertCostInfo(costData)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeAzureCostComparisonHandler(subscriptionID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		credential, subID, err := azureCredential(subscriptionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure Azure: %v", err)), nil
		}

		costSvc, err := azurecostmanagement.NewService(subID, credential)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create cost service: %v", err)), nil
		}

		currentData, err := costSvc.GetCurrentMonthCostsByService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get current month costs: %v", err)), nil
		}

		lastData, err := costSvc.GetLastMonthCostsByService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get last month costs: %v", err)), nil
		}

		currentCosts := response.ConvertCostInfo(currentData)
		lastCosts := response.ConvertCostInfo(lastData)

		diff := currentCosts.Total - lastCosts.Total
		var percentChange float64
		if lastCosts.Total > 0 {
			percentChange = (diff / lastCosts.Total) * 100
		}

		resp := response.CostComparison{
			CurrentMonth:  *currentCosts,
			LastMonth:     *lastCosts,
			Difference:    diff,
			PercentChange: percentChange,
		}

		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeAzureCostTrendHandler(subscriptionID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		credential, subID, err := azureCredential(subscriptionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure Azure: %v", err)), nil
		}

		costSvc, err := azurecostmanagement.NewService(subID, credential)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create cost service: %v", err)), nil
		}

		trendData, err := costSvc.GetLastSixMonthsCosts(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get cost trend: %v", err)), nil
		}

		resp := response.ConvertTrendData(trendData)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeAzureRecommendationsHandler(subscriptionID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		credential, subID, err := azureCredential(subscriptionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure Azure: %v", err)), nil
		}

		identitySvc, err := azureidentity.NewService(subID, credential)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create identity service: %v", err)), nil
		}

		computeSvc, err := azurecompute.NewService(subID, credential)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create compute service: %v", err)), nil
		}

		monitorSvc, err := azuremonitor.NewService(credential, defaultLookbackDays)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create monitor service: %v", err)), nil
		}

		inventorySvc := azureinventory.NewService(computeSvc, monitorSvc, logger)

		summary, err := runCheckup(ctx, "azure", identitySvc, inventorySvc)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to run savings analysis: %v", err)), nil
		}

		data, _ := json.MarshalIndent(summary, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeAzureExpiringReservationsHandler(subscriptionID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		credential, subID, err := azureCredential(subscriptionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure Azure: %v", err)), nil
		}

		computeSvc, err := azurecompute.NewService(subID, credential)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create compute service: %v", err)), nil
		}

		reservations, err := computeSvc.GetExpiringReservations(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get expiring reservations: %v", err)), nil
		}

		resp := response.ConvertReservations(reservations)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
