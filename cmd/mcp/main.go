package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/elC0mpa/cloud-cost-doctor/cmd/mcp/tools"
)

func main() {
	cfg := LoadConfig()

	s := server.NewMCPServer(
		"cloud-cost-doctor-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterAWSTools(s, cfg.AWSRegion, cfg.AWSProfile)
	if cfg.HasAzure() {
		tools.RegisterAzureTools(s, cfg.AzureSubscriptionID)
	}
	if cfg.HasGCP() {
		tools.RegisterGCPTools(s, cfg.GCPProjectID, cfg.GCPBillingAccount)
	}
	tools.RegisterMultiCloudTools(s, cfg.AWSRegion, cfg.AWSProfile, cfg.GCPProjectID, cfg.GCPBillingAccount, cfg.AzureSubscriptionID)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
