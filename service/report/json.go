package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

// jsonReport mirrors Report with error values flattened to strings so
// they survive marshaling
type jsonReport struct {
	GeneratedAt  time.Time                            `json:"generated_at"`
	TotalMonthly float64                              `json:"total_monthly_savings"`
	ByType       map[model.RecommendationType]float64 `json:"savings_by_type"`
	Providers    []jsonProvider                       `json:"providers"`
}

type jsonProvider struct {
	Provider        string                 `json:"provider"`
	AccountID       string                 `json:"account_id"`
	TotalMonthly    float64                `json:"total_monthly_savings"`
	Recommendations []model.Recommendation `json:"recommendations"`
	Reservations    []model.Reservation    `json:"expiring_reservations,omitempty"`
	Error           string                 `json:"error,omitempty"`
}

func writeJSON(report Report, writer io.Writer) error {
	out := jsonReport{
		GeneratedAt:  report.GeneratedAt,
		TotalMonthly: report.TotalMonthly,
		ByType:       report.ByType,
	}

	for _, result := range report.Results {
		provider := jsonProvider{
			Provider:        result.Provider,
			AccountID:       result.AccountID,
			TotalMonthly:    result.TotalMonthly,
			Recommendations: result.Recommendations,
			Reservations:    result.Reservations,
		}
		if result.Error != nil {
			provider.Error = result.Error.Error()
		}
		out.Providers = append(out.Providers, provider)
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
