package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/elC0mpa/cloud-cost-doctor/cmd/mcp/response"
	"github.com/elC0mpa/cloud-cost-doctor/service"
	awscloudwatch "github.com/elC0mpa/cloud-cost-doctor/service/aws/cloudwatch"
	awsconfig "github.com/elC0mpa/cloud-cost-doctor/service/aws/config"
	awscostexplorer "github.com/elC0mpa/cloud-cost-doctor/service/aws/costexplorer"
	awsec2 "github.com/elC0mpa/cloud-cost-doctor/service/aws/ec2"
	awselb "github.com/elC0mpa/cloud-cost-doctor/service/aws/elb"
	awsinventory "github.com/elC0mpa/cloud-cost-doctor/service/aws/inventory"
	awsrds "github.com/elC0mpa/cloud-cost-doctor/service/aws/rds"
	awss3 "github.com/elC0mpa/cloud-cost-doctor/service/aws/s3"
	awssts "github.com/elC0mpa/cloud-cost-doctor/service/aws/sts"
)

// RegisterAWSTools registers all AWS tools with the MCP server
func RegisterAWSTools(s *server.MCPServer, region, profile string) {
	s.AddTool(
		mcp.NewTool("aws_get_account_info",
			mcp.WithDescription("Get AWS account identity information including account ID and ARN"),
		),
		makeAWSAccountInfoHandler(region, profile),
	)

	s.AddTool(
		mcp.NewTool("aws_get_current_month_costs",
			mcp.WithDescription("Get AWS costs for the current month, broken down by service"),
		),
		makeAWSCurrentMonthCostsHandler(region, profile),
	)

	s.AddTool(
		mcp.NewTool("aws_get_cost_comparison",
			mcp.WithDescription("Compare AWS costs between current month and last month (same period), showing difference and percent change"),
		),
		makeAWSCostComparisonHandler(region, profile),
	)

	s.AddTool(
		mcp.NewTool("aws_get_cost_trend",
			mcp.WithDescription("Get AWS cost trend for the last 6 months with summary statistics"),
		),
		makeAWSCostTrendHandler(region, profile),
	)

	s.AddTool(
		mcp.NewTool("aws_get_savings_recommendations",
			mcp.WithDescription("Run a full AWS savings analysis: rightsizing, idle resources, storage class changes, lifecycle policies, unused resources, and reserved capacity opportunities, ranked by estimated monthly savings"),
		),
		makeAWSRecommendationsHandler(region, profile),
	)

	s.AddTool(
		mcp.NewTool("aws_get_expiring_reservations",
			mcp.WithDescription("List Reserved Instances that are expiring within 30 days or have recently expired"),
		),
		makeAWSExpiringReservationsHandler(region, profile),
	)
}

func newAWSInventory(awsCfg aws.Config, region string) service.InventoryService {
	return awsinventory.NewService(
		region,
		awsec2.NewService(awsCfg),
		awsrds.NewService(awsCfg),
		awss3.NewService(awsCfg, logger),
		awselb.NewService(awsCfg),
		awscloudwatch.NewService(awsCfg, defaultLookbackDays),
		logger,
	)
}

func makeAWSAccountInfoHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		info, err := awssts.NewService(awsCfg).GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get account info: %v", err)), nil
		}

		resp := response.ConvertAccountInfo(info)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeAWSCurrentMonthCostsHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		costData, err := awscostexplorer.NewService(awsCfg).GetCurrentMonthCostsByService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get costs: %v", err)), nil
		}

		resp := response.ConvertCostInfo(costData)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeAWSCostComparisonHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		costSvc := awscostexplorer.NewService(awsCfg)

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

func makeAWSCostTrendHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		trendData, err := awscostexplorer.NewService(awsCfg).GetLastSixMonthsCosts(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get cost trend: %v", err)), nil
		}

		resp := response.ConvertTrendData(trendData)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeAWSRecommendationsHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		summary, err := runCheckup(ctx, "aws", awssts.NewService(awsCfg), newAWSInventory(awsCfg, region))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to run savings analysis: %v", err)), nil
		}

		data, _ := json.MarshalIndent(summary, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeAWSExpiringReservationsHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to configure AWS: %v", err)), nil
		}

		reservations, err := awsec2.NewService(awsCfg).GetExpiringReservations(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get expiring reservations: %v", err)), nil
		}

		resp := response.ConvertReservations(reservations)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
