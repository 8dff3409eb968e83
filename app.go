package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	awscloudwatch "github.com/elC0mpa/cloud-cost-doctor/service/aws/cloudwatch"
	awsconfig "github.com/elC0mpa/cloud-cost-doctor/service/aws/config"
	awscostexplorer "github.com/elC0mpa/cloud-cost-doctor/service/aws/costexplorer"
	awsec2 "github.com/elC0mpa/cloud-cost-doctor/service/aws/ec2"
	awselb "github.com/elC0mpa/cloud-cost-doctor/service/aws/elb"
	awsinventory "github.com/elC0mpa/cloud-cost-doctor/service/aws/inventory"
	awsrds "github.com/elC0mpa/cloud-cost-doctor/service/aws/rds"
	awss3 "github.com/elC0mpa/cloud-cost-doctor/service/aws/s3"
	awssts "github.com/elC0mpa/cloud-cost-doctor/service/aws/sts"
	azurecompute "github.com/elC0mpa/cloud-cost-doctor/service/azure/compute"
	azureconfig "github.com/elC0mpa/cloud-cost-doctor/service/azure/config"
	azurecostmanagement "github.com/elC0mpa/cloud-cost-doctor/service/azure/costmanagement"
	azureidentity "github.com/elC0mpa/cloud-cost-doctor/service/azure/identity"
	azureinventory "github.com/elC0mpa/cloud-cost-doctor/service/azure/inventory"
	azuremonitor "github.com/elC0mpa/cloud-cost-doctor/service/azure/monitor"
	"github.com/elC0mpa/cloud-cost-doctor/service/config"
	"github.com/elC0mpa/cloud-cost-doctor/service/flag"
	gcpbilling "github.com/elC0mpa/cloud-cost-doctor/service/gcp/billing"
	gcpcompute "github.com/elC0mpa/cloud-cost-doctor/service/gcp/compute"
	gcpconfig "github.com/elC0mpa/cloud-cost-doctor/service/gcp/config"
	gcpidentity "github.com/elC0mpa/cloud-cost-doctor/service/gcp/identity"
	gcpinventory "github.com/elC0mpa/cloud-cost-doctor/service/gcp/inventory"
	"github.com/elC0mpa/cloud-cost-doctor/service/logging"
	"github.com/elC0mpa/cloud-cost-doctor/service/orchestrator"
	"github.com/elC0mpa/cloud-cost-doctor/service/pricing"
	"github.com/elC0mpa/cloud-cost-doctor/service/report"
	"github.com/elC0mpa/cloud-cost-doctor/service/reserved"
	"github.com/elC0mpa/cloud-cost-doctor/service/rules"
	"github.com/elC0mpa/cloud-cost-doctor/utils"
)

func main() {
	utils.DrawBanner()

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg, flags)

	logger := logging.New(cfg.General.LogLevel)
	defer logger.Sync()

	utils.StartSpinner()

	providers, err := buildProviders(context.Background(), flags.Provider, cfg, logger)
	if err != nil {
		utils.StopSpinner()
		logger.Fatal("failed to initialize providers", zap.Error(err))
	}

	catalog := pricing.NewStaticCatalog()
	calc := pricing.NewCalculator(catalog, cfg.Analysis.BaseUnitPrice)
	ruleset := rules.DefaultRules(ruleSettings(cfg), calc, logger)
	grouper := reserved.NewService(reservedSettings(cfg), calc, logger)
	reporter := report.NewService(cfg.Reporting.OutputDir)

	orchestratorService := orchestrator.NewService(providers, ruleset, grouper, reporter, logger)

	if err := orchestratorService.Orchestrate(flags); err != nil {
		utils.StopSpinner()
		logger.Fatal("checkup failed", zap.Error(err))
	}
}

func applyFlagOverrides(cfg *config.Config, flags model.Flags) {
	if flags.Region != "" {
		cfg.AWS.Region = flags.Region
	}
	if flags.Profile != "" {
		cfg.AWS.Profile = flags.Profile
	}
	if flags.Subscription != "" {
		cfg.Azure.SubscriptionID = flags.Subscription
	}
	if flags.Project != "" {
		cfg.GCP.ProjectID = flags.Project
	}
	if flags.BillingAccount != "" {
		cfg.GCP.BillingAccount = flags.BillingAccount
	}
}

func ruleSettings(cfg *config.Config) rules.Settings {
	return rules.Settings{
		MinCPUUtilization:    cfg.Analysis.CPUThresholdPercent,
		InfrequentAccessDays: cfg.Analysis.InfrequentAccessDays,
		GlacierDays:          cfg.Analysis.GlacierDays,
		DeepArchiveDays:      cfg.Analysis.DeepArchiveDays,
		MinBucketSizeMB:      int(cfg.Analysis.MinBucketSizeMB),
	}
}

func reservedSettings(cfg *config.Config) reserved.Settings {
	return reserved.Settings{
		MinUptimeHours:    cfg.Analysis.MinUptimeHours,
		LongTermMinCount:  cfg.Analysis.LongTermMinCount,
		ShortTermDiscount: cfg.Analysis.ShortTermDiscountRate,
		LongTermDiscount:  cfg.Analysis.LongTermDiscountRate,
	}
}

func buildProviders(ctx context.Context, selection string, cfg *config.Config, logger *zap.Logger) ([]orchestrator.Provider, error) {
	var providers []orchestrator.Provider

	if selection == "aws" || selection == "all" {
		provider, err := buildAWSProvider(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}

	if selection == "azure" || (selection == "all" && cfg.HasAzure()) {
		if !cfg.HasAzure() {
			return nil, fmt.Errorf("azure subscription not configured")
		}
		provider, err := buildAzureProvider(cfg, logger)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}

	if selection == "gcp" || (selection == "all" && cfg.HasGCP()) {
		if !cfg.HasGCP() {
			return nil, fmt.Errorf("gcp project not configured")
		}
		provider, err := buildGCPProvider(ctx, cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers configured")
	}
	return providers, nil
}

func buildAWSProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) (orchestrator.Provider, error) {
	awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, cfg.AWS.Region, cfg.AWS.Profile)
	if err != nil {
		return orchestrator.Provider{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	inventory := awsinventory.NewService(
		cfg.AWS.Region,
		awsec2.NewService(awsCfg),
		awsrds.NewService(awsCfg),
		awss3.NewService(awsCfg, logger),
		awselb.NewService(awsCfg),
		awscloudwatch.NewService(awsCfg, cfg.Analysis.MetricLookbackDays),
		logger,
	)

	return orchestrator.Provider{
		Name:      string(model.ProviderAWS),
		Identity:  awssts.NewService(awsCfg),
		Cost:      awscostexplorer.NewService(awsCfg),
		Inventory: inventory,
	}, nil
}

func buildAzureProvider(cfg *config.Config, logger *zap.Logger) (orchestrator.Provider, error) {
	configService, err := azureconfig.NewService(cfg.Azure.SubscriptionID)
	if err != nil {
		return orchestrator.Provider{}, err
	}
	credential := configService.GetCredential()
	subscriptionID := configService.GetSubscriptionID()

	identity, err := azureidentity.NewService(subscriptionID, credential)
	if err != nil {
		return orchestrator.Provider{}, err
	}
	compute, err := azurecompute.NewService(subscriptionID, credential)
	if err != nil {
		return orchestrator.Provider{}, err
	}
	monitor, err := azuremonitor.NewService(credential, cfg.Analysis.MetricLookbackDays)
	if err != nil {
		return orchestrator.Provider{}, err
	}
	costs, err := azurecostmanagement.NewService(subscriptionID, credential)
	if err != nil {
		return orchestrator.Provider{}, err
	}

	return orchestrator.Provider{
		Name:      string(model.ProviderAzure),
		Identity:  identity,
		Cost:      costs,
		Inventory: azureinventory.NewService(compute, monitor, logger),
	}, nil
}

func buildGCPProvider(ctx context.Context, cfg *config.Config) (orchestrator.Provider, error) {
	// resolve ADC up front so a missing gcloud login fails here, not mid-checkup
	if _, err := gcpconfig.NewService(cfg.GCP.ProjectID).GetCredentials(ctx); err != nil {
		return orchestrator.Provider{}, fmt.Errorf("failed to resolve GCP credentials: %w", err)
	}

	identity, err := gcpidentity.NewService(ctx, cfg.GCP.ProjectID)
	if err != nil {
		return orchestrator.Provider{}, err
	}
	compute, err := gcpcompute.NewService(ctx, cfg.GCP.ProjectID)
	if err != nil {
		return orchestrator.Provider{}, err
	}

	provider := orchestrator.Provider{
		Name:      string(model.ProviderGCP),
		Identity:  identity,
		Inventory: gcpinventory.NewService(compute),
	}

	if cfg.HasGCPBilling() {
		billing, err := gcpbilling.NewService(ctx, cfg.GCP.ProjectID, cfg.GCP.BillingAccount)
		if err != nil {
			return orchestrator.Provider{}, err
		}
		provider.Cost = billing
	}

	return provider, nil
}
