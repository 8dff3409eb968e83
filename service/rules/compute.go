package rules

import (
	"errors"
	"fmt"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	"github.com/elC0mpa/cloud-cost-doctor/service/pricing"
	"go.uber.org/zap"
)

// underutilizationRule proposes a one-step size downgrade when average CPU
// sits strictly below the configured threshold
type underutilizationRule struct {
	settings Settings
	calc     *pricing.Calculator
	logger   *zap.Logger
}

// NewUnderutilizationRule builds the rightsizing rule for compute
// instances and managed databases
func NewUnderutilizationRule(settings Settings, calc *pricing.Calculator, logger *zap.Logger) Rule {
	return &underutilizationRule{
		settings: settings,
		calc:     calc,
		logger:   logger,
	}
}

func (r *underutilizationRule) Name() string {
	return "underutilization"
}

func (r *underutilizationRule) Classify(in Input) []model.Recommendation {
	res := in.Resource
	if res.Kind != model.KindComputeInstance && res.Kind != model.KindManagedDatabase {
		return nil
	}
	if res.State != model.StateRunning {
		return nil
	}

	avgCPU, ok := in.Utilization.Average(model.MetricCPUUtilization)
	if !ok {
		// insufficient evidence, not a zero
		return nil
	}
	if avgCPU >= r.settings.MinCPUUtilization {
		return nil
	}

	target, ok := pricing.Downgrade(res.Provider, res.Size)
	if !ok || target == res.Size {
		return nil
	}

	savings, err := r.calc.DownsizingSavings(res.Provider, res.Kind, res.Size, target)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownSize) {
			r.logger.Debug("skipping rightsize candidate with unparseable size",
				zap.String("resource", res.ID), zap.String("size", res.Size))
		}
		return nil
	}
	if savings <= 0 {
		return nil
	}

	confidence := model.ConfidenceMedium
	if avgCPU < highConfidenceCPU {
		confidence = model.ConfidenceHigh
	}

	return []model.Recommendation{{
		ResourceID:   res.ID,
		ResourceName: res.Name,
		Provider:     res.Provider,
		Region:       res.Region,
		Kind:         res.Kind,
		Type:         model.RecommendationRightsize,
		State: model.RightsizeState{
			CurrentSize:    res.Size,
			TargetSize:     target,
			AvgUtilization: avgCPU,
			Threshold:      r.settings.MinCPUUtilization,
		},
		EstimatedMonthlySavings: savings,
		Confidence:              confidence,
		Details: fmt.Sprintf(
			"Average CPU utilization of %.1f%% is below the %.1f%% threshold. Consider downsizing from %s to %s.",
			avgCPU, r.settings.MinCPUUtilization, res.Size, target),
	}}
}

// idleRule proposes terminating resources with almost no CPU activity.
// Its threshold is fixed and strictly tighter than the underutilization
// threshold, so both rules can fire for the same resource; the two
// recommendations are surfaced as alternatives.
type idleRule struct {
	calc   *pricing.Calculator
	logger *zap.Logger
}

// NewIdleRule builds the terminate-idle rule
func NewIdleRule(calc *pricing.Calculator, logger *zap.Logger) Rule {
	return &idleRule{calc: calc, logger: logger}
}

func (r *idleRule) Name() string {
	return "idle"
}

func (r *idleRule) Classify(in Input) []model.Recommendation {
	res := in.Resource
	if res.Kind != model.KindComputeInstance && res.Kind != model.KindManagedDatabase {
		return nil
	}
	if res.State != model.StateRunning {
		return nil
	}

	avgCPU, ok := in.Utilization.Average(model.MetricCPUUtilization)
	if !ok {
		return nil
	}
	if avgCPU >= idleThreshold {
		return nil
	}

	// A database still holding client connections is not idle even when its
	// CPU barely registers, so terminating it would cut off live traffic.
	if res.Kind == model.KindManagedDatabase {
		if conns, ok := in.Utilization.Average(model.MetricConnections); ok && conns >= activeConnectionsFloor {
			return nil
		}
	}

	monthly, err := r.calc.MonthlyCost(res.Provider, res.Kind, res.Size)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownSize) {
			r.logger.Debug("skipping idle candidate with unparseable size",
				zap.String("resource", res.ID), zap.String("size", res.Size))
		}
		return nil
	}
	if monthly <= 0 {
		return nil
	}

	confidence := model.ConfidenceMedium
	if avgCPU < highConfidenceIdleCPU {
		confidence = model.ConfidenceHigh
	}

	return []model.Recommendation{{
		ResourceID:   res.ID,
		ResourceName: res.Name,
		Provider:     res.Provider,
		Region:       res.Region,
		Kind:         res.Kind,
		Type:         model.RecommendationTerminateIdle,
		State: model.TerminateIdleState{
			CurrentSize:    res.Size,
			AvgUtilization: avgCPU,
		},
		EstimatedMonthlySavings: monthly,
		Confidence:              confidence,
		Details: fmt.Sprintf(
			"Average CPU utilization of %.1f%% indicates the resource is idle. Consider terminating it if no longer needed.",
			avgCPU),
	}}
}
