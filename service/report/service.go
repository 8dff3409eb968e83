package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

func NewService(outputDir string) *service {
	if outputDir == "" {
		outputDir = "."
	}
	return &service{
		outputDir: outputDir,
	}
}

// Build rolls per-provider results up into a report with savings totals
func (s *service) Build(results []model.ProviderCheckupResult) Report {
	report := Report{
		GeneratedAt: time.Now(),
		Results:     results,
		ByType:      make(map[model.RecommendationType]float64),
	}
	for _, result := range results {
		if result.Error != nil {
			continue
		}
		report.TotalMonthly += result.TotalMonthly
		for _, rec := range result.Recommendations {
			report.ByType[rec.Type] += rec.EstimatedMonthlySavings
		}
	}
	return report
}

// Write renders the report to a timestamped file and returns its path
func (s *service) Write(report Report, format Format) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("checkup-%s.%s", report.GeneratedAt.Format("20060102-150405"), format)
	path := filepath.Join(s.outputDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatCSV:
		err = writeCSV(report, file)
	case FormatHTML:
		err = writeHTML(report, file)
	case FormatJSON:
		err = writeJSON(report, file)
	default:
		err = fmt.Errorf("unknown report format %q", format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}
