package report

import (
	"time"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

// Format is the report output format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// Report is the file-oriented rendering of a checkup run
type Report struct {
	GeneratedAt  time.Time
	Results      []model.ProviderCheckupResult
	TotalMonthly float64
	ByType       map[model.RecommendationType]float64
}

type service struct {
	outputDir string
}

type ReportService interface {
	Build(results []model.ProviderCheckupResult) Report
	Write(report Report, format Format) (string, error)
}
