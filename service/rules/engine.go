package rules

import (
	"time"

	"go.uber.org/zap"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	"github.com/elC0mpa/cloud-cost-doctor/service/pricing"
)

// DefaultRules builds the full rule set in evaluation order
func DefaultRules(settings Settings, calc *pricing.Calculator, logger *zap.Logger) []Rule {
	return []Rule{
		NewUnderutilizationRule(settings, calc, logger),
		NewIdleRule(calc, logger),
		NewStorageRule(settings),
		NewUnusedResourceRule(),
	}
}

// Evaluate runs every rule against every resource in the inventory.
// Rules are independent, so one resource may collect recommendations from
// several of them.
func Evaluate(ruleset []Rule, inv model.Inventory, now time.Time) []model.Recommendation {
	var recs []model.Recommendation
	for _, res := range inv.Resources {
		in := Input{
			Resource:    res,
			Utilization: inv.Utilization[res.ID],
			Now:         now,
		}
		if meta, ok := inv.Buckets[res.ID]; ok {
			in.Bucket = &meta
		}
		for _, rule := range ruleset {
			recs = append(recs, rule.Classify(in)...)
		}
	}
	return recs
}
