package reserved

import (
	"github.com/elC0mpa/cloud-cost-doctor/model"
)

// Settings carries the commitment policy inputs. Discount tiers are policy,
// not derived truths, so they are injected rather than hardcoded.
type Settings struct {
	// MinUptimeHours gates group membership: a resource must have been
	// running at least this long to count toward a commitment
	MinUptimeHours float64

	// LongTermMinCount selects the long-term tier at or above this count
	LongTermMinCount int

	// Discount rates as fractions of on-demand cost
	ShortTermDiscount float64 // "1-year" tier
	LongTermDiscount  float64 // "3-year" tier
}

// DefaultSettings returns the documented commitment defaults
func DefaultSettings() Settings {
	return Settings{
		MinUptimeHours:    168,
		LongTermMinCount:  5,
		ShortTermDiscount: 0.35,
		LongTermDiscount:  0.60,
	}
}

// minGroupSize is fixed: no economy of scale is assumed below 2 members
const minGroupSize = 2

// Grouper proposes commitment-discount purchases for groups of
// steadily-running resources
type Grouper interface {
	Group(inv model.Inventory) []model.Recommendation
}
