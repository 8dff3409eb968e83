package pricing

import (
	"github.com/elC0mpa/cloud-cost-doctor/model"
)

// MonthlyHours projects an hourly price to a month (30 days)
const MonthlyHours = 24 * 30

// Calculator provides the shared numeric routines: hourly-to-monthly
// projection and downsizing savings with the magnitude-ratio fallback.
type Calculator struct {
	catalog       Catalog
	baseUnitPrice float64
}

// NewCalculator wires a catalog and the fallback base unit price. A zero
// baseUnitPrice selects the documented default.
func NewCalculator(catalog Catalog, baseUnitPrice float64) *Calculator {
	if baseUnitPrice <= 0 {
		baseUnitPrice = DefaultBaseUnitPrice
	}
	return &Calculator{
		catalog:       catalog,
		baseUnitPrice: baseUnitPrice,
	}
}

// HourlyPrice resolves an hourly price from the catalog, falling back to
// the magnitude estimator when the exact size is missing. The synthetic
// price preserves relative ordering within a size family even when the
// absolute value is approximate.
func (c *Calculator) HourlyPrice(provider model.Provider, kind model.ResourceKind, size string) (float64, error) {
	if price, ok := c.catalog.PriceOf(kind, size); ok {
		return price, nil
	}

	class, err := ParseSize(provider, size)
	if err != nil {
		return 0, err
	}
	return class.Magnitude * c.baseUnitPrice, nil
}

// MonthlyCost projects the resource's hourly price to a monthly figure
func (c *Calculator) MonthlyCost(provider model.Provider, kind model.ResourceKind, size string) (float64, error) {
	hourly, err := c.HourlyPrice(provider, kind, size)
	if err != nil {
		return 0, err
	}
	return hourly * MonthlyHours, nil
}

// DownsizingSavings estimates the USD/month saved by moving from the
// current size to the target. Exact catalog prices are preferred for both
// sides; if either is missing, both sides use the fallback estimator so
// the differential stays internally consistent. Callers must treat a
// non-positive result as "no recommendation".
func (c *Calculator) DownsizingSavings(provider model.Provider, kind model.ResourceKind, current, target string) (float64, error) {
	currentPrice, okCurrent := c.catalog.PriceOf(kind, current)
	targetPrice, okTarget := c.catalog.PriceOf(kind, target)

	if !okCurrent || !okTarget {
		var err error
		currentPrice, err = c.syntheticHourly(provider, current)
		if err != nil {
			return 0, err
		}
		targetPrice, err = c.syntheticHourly(provider, target)
		if err != nil {
			return 0, err
		}
	}

	return (currentPrice - targetPrice) * MonthlyHours, nil
}

func (c *Calculator) syntheticHourly(provider model.Provider, size string) (float64, error) {
	class, err := ParseSize(provider, size)
	if err != nil {
		return 0, err
	}
	return class.Magnitude * c.baseUnitPrice, nil
}
