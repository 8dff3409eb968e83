package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/elC0mpa/cloud-cost-doctor/cmd/mcp/response"
	gcpbilling "github.com/elC0mpa/cloud-cost-doctor/service/gcp/billing"
	gcpcompute "github.com/elC0mpa/cloud-cost-doctor/service/gcp/compute"
	gcpidentity "github.com/elC0mpa/cloud-cost-doctor/service/gcp/identity"
	gcpinventory "github.com/elC0mpa/cloud-cost-doctor/service/gcp/inventory"
)

// RegisterGCPTools registers all GCP tools with the MCP server. Cost tools
// are only registered when a billing account is configured, since they
// read the BigQuery billing export.
func RegisterGCPTools(s *server.MCPServer, projectID, billingAccount string) {
	s.AddTool(
		mcp.NewTool("gcp_get_project_info",
			mcp.WithDescription("Get GCP project identity information including project ID and display name"),
		),
		makeGCPProjectInfoHandler(projectID),
	)

	s.AddTool(
		mcp.NewTool("gcp_get_savings_recommendations",
			mcp.WithDescription("Run a full GCP savings analysis: unattached persistent disks, unassigned external IPs, stopped instances, and committed use discount opportunities, ranked by estimated monthly savings"),
		),
		makeGCPRecommendationsHandler(projectID),
	)

	s.AddTool(
		mcp.NewTool("gcp_get_expiring_commitments",
			mcp.WithDescription("List GCP committed use discounts that are expiring within 30 days or have recently expired"),
		),
		makeGCPExpiringCommitmentsHandler(projectID),
	)

	if billingAccount == "" {
		return
	}

	s.AddTool(
		mcp.NewTool("gcp_get_current_month_costs",
			mcp.WithDescription("Get GCP costs for the current month, broken down by service (requires BigQuery billing export)"),
		),
		makeGCPCurrentMonthCostsHandler(projectID, billingAccount),
	)

	s.AddTool(
		mcp.NewTool("gcp_get_cost_comparison",
			mcp.WithDescription("Compare GCP costs between current month and last month (same period), showing difference and percent change"),
		),
		makeGCPCostComparisonHandler(projectID, billingAccount),
	)

	s.AddTool(
		mcp.NewTool("gcp_get_cost_trend",
			mcp.WithDescription("Get GCP cost trend for the last 6 months with summary statistics"),
		),
		makeGCPCostTrendHandler(projectID, billingAccount),
	)
}

func makeGCPProjectInfoHandler(projectID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		identitySvc, err := gcpidentity.NewService(ctx, projectID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure GCP: %v", err)), nil
		}

		info, err := identitySvc.GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get project info: %v", err)), nil
		}

		resp := response.ConvertAccountInfo(info)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeGCPRecommendationsHandler(projectID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		identitySvc, err := gcpidentity.NewService(ctx, projectID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure GCP: %v", err)), nil
		}

		computeSvc, err := gcpcompute.NewService(ctx, projectID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create compute service: %v", err)), nil
		}

		summary, err := runCheckup(ctx, "gcp", identitySvc, gcpinventory.NewService(computeSvc))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to run savings analysis: %v", err)), nil
		}

		data, _ := json.MarshalIndent(summary, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeGCPExpiringCommitmentsHandler(projectID string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		computeSvc, err := gcpcompute.NewService(ctx, projectID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure GCP: %v", err)), nil
		}

		commitments, err := computeSvc.GetExpiringCommitments(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get expiring commitments: %v", err)), nil
		}

		resp := response.ConvertReservations(commitments)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeGCPCurrentMonthCostsHandler(projectID, billingAccount string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		billingSvc, err := gcpbilling.NewService(ctx, projectID, billingAccount)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure GCP billing: %v", err)), nil
		}
		defer billingSvc.Close()

		costData, err := billingSvc.GetCurrentMonthCostsByService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get costs: %v", err)), nil
		}

		resp := response.ConvertCostInfo(costData)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeGCPCostComparisonHandler(projectID, billingAccount string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		billingSvc, err := gcpbilling.NewService(ctx, projectID, billingAccount)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure GCP billing: %v", err)), nil
		}
		defer billingSvc.Close()

		currentData, err := billingSvc.GetCurrentMonthCostsByService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get current month costs: %v", err)), nil
		}

		lastData, err := billingSvc.GetLastMonthCostsByService(ctx)
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

func makeGCPCostTrendHandler(projectID, billingAccount string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		billingSvc, err := gcpbilling.NewService(ctx, projectID, billingAccount)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure GCP billing: %v", err)), nil
		}
		defer billingSvc.Close()

		trendData, err := billingSvc.GetLastSixMonthsCosts(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get cost trend: %v", err)), nil
		}

		resp := response.ConvertTrendData(trendData)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
