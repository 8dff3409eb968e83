package flag

import (
	"flag"
	"fmt"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func NewService() *service {
	return &service{}
}

func (s *service) GetParsedFlags() (model.Flags, error) {
	provider := flag.String("provider", "aws", "Cloud provider to examine: aws, azure, gcp, or all")
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	costs := flag.Bool("costs", false, "Display a cost breakdown instead of savings recommendations")
	trend := flag.Bool("trend", false, "Display a cost trend for the last 6 months")
	report := flag.String("report", "", "Also write a report file: csv, html, or json")
	region := flag.String("region", "", "AWS region")
	profile := flag.String("profile", "", "AWS profile configuration")
	project := flag.String("project", "", "GCP project ID")
	billingAccount := flag.String("billing-account", "", "GCP billing account for cost analysis")
	subscription := flag.String("subscription", "", "Azure subscription ID")

	flag.Parse()

	switch *provider {
	case "aws", "azure", "gcp", "all":
	default:
		return model.Flags{}, fmt.Errorf("unknown provider %q", *provider)
	}

	switch *report {
	case "", "csv", "html", "json":
	default:
		return model.Flags{}, fmt.Errorf("unknown report format %q", *report)
	}

	return model.Flags{
		Provider:       *provider,
		ConfigPath:     *configPath,
		Costs:          *costs,
		Trend:          *trend,
		Report:         *report,
		Region:         *region,
		Profile:        *profile,
		Project:        *project,
		BillingAccount: *billingAccount,
		Subscription:   *subscription,
	}, nil
}
