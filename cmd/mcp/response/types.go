package response

// AccountInfo represents cloud account/project identity
type AccountInfo struct {
	Provider    string `json:"provider"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
}

// ServiceCost represents cost for a single service
type ServiceCost struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// CostInfo represents cost data for a time period
type CostInfo struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Services  []ServiceCost `json:"services"`
	Total     float64       `json:"total"`
	Currency  string        `json:"currency"`
}

// CostComparison represents cost comparison between two periods
type CostComparison struct {
	CurrentMonth  CostInfo `json:"current_month"`
	LastMonth     CostInfo `json:"last_month"`
	Difference    float64  `json:"difference"`
	PercentChange float64  `json:"percent_change"`
}

// TrendSummary provides summary statistics for cost trend
type TrendSummary struct {
	TotalSpend     float64 `json:"total_spend_6_months"`
	AverageMonthly float64 `json:"average_monthly"`
	HighestMonth   string  `json:"highest_month"`
	HighestAmount  float64 `json:"highest_amount"`
	LowestMonth    string  `json:"lowest_month"`
	LowestAmount   float64 `json:"lowest_amount"`
}

// CostTrend represents 6-month cost trend with summary
type CostTrend struct {
	Months  []CostInfo   `json:"months"`
	Summary TrendSummary `json:"summary"`
}

// Recommendation represents a single savings recommendation
type Recommendation struct {
	ResourceID     string  `json:"resource_id"`
	ResourceName   string  `json:"resource_name"`
	Provider       string  `json:"provider"`
	Region         string  `json:"region"`
	Kind           string  `json:"kind"`
	Type           string  `json:"type"`
	MonthlySavings float64 `json:"estimated_monthly_savings"`
	Confidence     string  `json:"confidence"`
	Details        string  `json:"details"`
}

// Reservation represents a reserved instance/commitment
type Reservation struct {
	ID              string `json:"id"`
	InstanceType    string `json:"instance_type"`
	Status          string `json:"status"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
}

// CheckupSummary aggregates one provider's savings analysis
type CheckupSummary struct {
	Provider             string             `json:"provider"`
	AccountID            string             `json:"account_id"`
	Recommendations      []Recommendation   `json:"recommendations"`
	ExpiringReservations []Reservation      `json:"expiring_reservations"`
	TotalMonthlySavings  float64            `json:"total_monthly_savings"`
	SavingsByType        map[string]float64 `json:"savings_by_type"`
	Error                string             `json:"error,omitempty"`
}

// MultiCloudCostSummary represents costs across all providers
type MultiCloudCostSummary struct {
	Providers []ProviderCostSummary `json:"providers"`
	Total     float64               `json:"total"`
	Currency  string                `json:"currency"`
}

// ProviderCostSummary represents cost summary for a single provider
type ProviderCostSummary struct {
	Provider         string  `json:"provider"`
	AccountID        string  `json:"account_id"`
	CurrentMonthCost float64 `json:"current_month_cost"`
	LastMonthCost    float64 `json:"last_month_cost"`
	Difference       float64 `json:"difference"`
	PercentChange    float64 `json:"percent_change"`
	Currency         string  `json:"currency"`
	Error            string  `json:"error,omitempty"`
}

// MultiCloudCheckupSummary represents savings analysis across all providers
type MultiCloudCheckupSummary struct {
	Providers           []CheckupSummary `json:"providers"`
	TotalMonthlySavings float64          `json:"total_monthly_savings"`
}
