package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

func writeCSV(report Report, writer io.Writer) error {
	w := csv.NewWriter(writer)
	defer w.Flush()

	header := []string{
		"Provider",
		"Account",
		"Region",
		"Resource",
		"Kind",
		"Type",
		"Recommendation",
		"Monthly Savings (USD)",
		"Confidence",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range report.Results {
		if result.Error != nil {
			continue
		}
		for _, rec := range result.Recommendations {
			row := []string{
				string(rec.Provider),
				result.AccountID,
				rec.Region,
				rec.ResourceName,
				string(rec.Kind),
				string(rec.Type),
				rec.Details,
				fmt.Sprintf("%.2f", rec.EstimatedMonthlySavings),
				string(rec.Confidence),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	w.Write([]string{})
	w.Write([]string{"SUMMARY"})
	w.Write([]string{"Total Monthly Savings", fmt.Sprintf("%.2f", report.TotalMonthly)})

	w.Write([]string{})
	w.Write([]string{"SAVINGS BY TYPE"})
	for recType, savings := range report.ByType {
		w.Write([]string{string(recType), fmt.Sprintf("%.2f", savings)})
	}

	return nil
}
