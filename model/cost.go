package model

// DateInterval represents a time period for cost analysis
type DateInterval struct {
	Start *string
	End   *string
}

// CostInfo contains cost data for a time period
type CostInfo struct {
	DateInterval
	CostGroup
}

// CostGroup maps service names to their cost data
type CostGroup map[string]struct {
	Amount float64
	Unit   string
}

// ServiceCost represents cost for a single service
type ServiceCost struct {
	Name   string
	Amount float64
	Unit   string
}

// ProviderCostResult represents cost analysis results for a single provider
type ProviderCostResult struct {
	Provider         string
	AccountID        string
	CurrentMonthData *CostInfo
	LastMonthData    *CostInfo
	CurrentTotalCost string
	LastTotalCost    string
	TrendData        []CostInfo
	Error            error
}

// ProviderCheckupResult represents one provider's recommendation pass.
// A provider that failed carries its error so the renderers can show the
// failure without hiding the other providers.
type ProviderCheckupResult struct {
	Provider        string
	AccountID       string
	Recommendations []Recommendation
	Reservations    []Reservation
	TotalMonthly    float64
	Error           error
}
