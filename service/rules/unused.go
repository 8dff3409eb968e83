package rules

import (
	"fmt"

	"github.com/elC0mpa/cloud-cost-doctor/model"
	"github.com/elC0mpa/cloud-cost-doctor/service/pricing"
)

// unusedResourceRule flags resources that cost money while doing nothing:
// unattached block volumes, unassociated public IPs, orphaned load
// balancers and long-stopped instances. These checks need no utilization
// data; the provider state alone is the evidence.
type unusedResourceRule struct{}

// NewUnusedResourceRule builds the unused-resource rule
func NewUnusedResourceRule() Rule {
	return &unusedResourceRule{}
}

func (r *unusedResourceRule) Name() string {
	return "unused-resource"
}

func (r *unusedResourceRule) Classify(in Input) []model.Recommendation {
	res := in.Resource

	switch res.Kind {
	case model.KindBlockVolume:
		if res.State != model.StateAvailable {
			return nil
		}
		savings := float64(res.SizeGB) * pricing.VolumeRateGBMonth
		return []model.Recommendation{r.recommend(res, savings,
			"unattached volume",
			fmt.Sprintf("Volume of %d GB is not attached to any instance. Delete or snapshot it.", res.SizeGB))}

	case model.KindPublicIP:
		if res.State != model.StateAvailable {
			return nil
		}
		return []model.Recommendation{r.recommend(res, pricing.PublicIPMonthlyCost,
			"unassociated public IP",
			"Public IP address is not associated with any resource. Release it.")}

	case model.KindLoadBalancer:
		if res.State != model.StateAvailable {
			return nil
		}
		return []model.Recommendation{r.recommend(res, pricing.LoadBalancerMonthlyCost,
			"orphaned load balancer",
			"Load balancer has no target groups attached. Delete it if no longer needed.")}

	case model.KindComputeInstance:
		if res.State != model.StateStopped || res.StateSince == nil {
			return nil
		}
		// A stopped instance no longer bills compute, but its attached
		// storage does. Flag instances stopped past the grace period.
		if in.Now.Sub(*res.StateSince).Hours() < stoppedInstanceGraceDay*24 {
			return nil
		}
		savings := float64(res.SizeGB) * pricing.VolumeRateGBMonth
		if savings <= 0 {
			savings = pricing.VolumeRateGBMonth * 8 // assume one small root volume
		}
		return []model.Recommendation{r.recommend(res, savings,
			"long-stopped instance",
			fmt.Sprintf("Instance has been stopped for more than %d days. Terminate it to stop paying for attached storage.", stoppedInstanceGraceDay))}
	}

	return nil
}

func (r *unusedResourceRule) recommend(res model.Resource, savings float64, reason, details string) model.Recommendation {
	return model.Recommendation{
		ResourceID:   res.ID,
		ResourceName: res.Name,
		Provider:     res.Provider,
		Region:       res.Region,
		Kind:         res.Kind,
		Type:         model.RecommendationUnusedResource,
		State: model.UnusedResourceState{
			Reason: reason,
			SizeGB: float64(res.SizeGB),
		},
		EstimatedMonthlySavings: savings,
		Confidence:              model.ConfidenceHigh,
		Details:                 details,
	}
}
