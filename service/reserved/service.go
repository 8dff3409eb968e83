package reserved

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	"github.com/elC0mpa/cloud-cost-doctor/service/pricing"
)

type service struct {
	settings Settings
	calc     *pricing.Calculator
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(settings Settings, calc *pricing.Calculator, logger *zap.Logger) Grouper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		settings: settings,
		calc:     calc,
		logger:   logger,
		now:      time.Now,
	}
}

type groupKey struct {
	kind   model.ResourceKind
	size   string
	region string
}

// Group buckets long-running resources by (kind, size, region) and emits one
// commitment recommendation per bucket of at least two members. Resources
// without a launch time cannot prove uptime and are skipped.
func (s *service) Group(inv model.Inventory) []model.Recommendation {
	now := s.now()
	groups := make(map[groupKey][]model.Resource)
	for _, res := range inv.Resources {
		if res.Kind != model.KindComputeInstance && res.Kind != model.KindManagedDatabase {
			continue
		}
		if res.State != model.StateRunning || res.Size == "" {
			continue
		}
		if res.LaunchTime == nil || res.UptimeHours(now) < s.settings.MinUptimeHours {
			continue
		}
		key := groupKey{kind: res.Kind, size: res.Size, region: res.Region}
		groups[key] = append(groups[key], res)
	}

	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.kind != b.kind {
			return a.kind < b.kind
		}
		if a.region != b.region {
			return a.region < b.region
		}
		return a.size < b.size
	})

	var recs []model.Recommendation
	for _, key := range keys {
		members := groups[key]
		if len(members) < minGroupSize {
			continue
		}

		term := "1-year"
		rate := s.settings.ShortTermDiscount
		if len(members) >= s.settings.LongTermMinCount {
			term = "3-year"
			rate = s.settings.LongTermDiscount
		}

		var total float64
		for _, res := range members {
			cost, err := s.calc.MonthlyCost(res.Provider, res.Kind, res.Size)
			if err != nil {
				s.logger.Debug("skipping commitment member with unpriceable size",
					zap.String("resource", res.ID),
					zap.String("size", res.Size))
				continue
			}
			total += cost
		}
		savings := total * rate
		if savings <= 0 {
			continue
		}

		confidence := model.ConfidenceMedium
		if len(members) > s.settings.LongTermMinCount {
			confidence = model.ConfidenceHigh
		}

		first := members[0]
		recs = append(recs, model.Recommendation{
			ResourceID:   first.ID,
			ResourceName: fmt.Sprintf("%d x %s", len(members), key.size),
			Provider:     first.Provider,
			Region:       key.region,
			Kind:         key.kind,
			Type:         model.RecommendationReservedCapacity,
			State: model.ReservedCapacityState{
				Size:         key.size,
				Count:        len(members),
				Term:         term,
				DiscountRate: rate,
			},
			EstimatedMonthlySavings: savings,
			Confidence:              confidence,
			Details: fmt.Sprintf("%d %s resources sized %s in %s have run continuously; a %s commitment saves roughly %.0f%% of on-demand cost",
				len(members), key.kind, key.size, key.region, term, rate*100),
		})
	}
	return recs
}
