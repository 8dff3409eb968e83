package model

// Metric names shared between collectors and classification rules.
// Collectors average raw datapoints over the lookback window; rules
// only ever see the averaged values.
const (
	MetricCPUUtilization = "cpu_utilization" // percent
	MetricConnections    = "database_connections"
	MetricBucketSize     = "bucket_size_bytes"
	MetricObjectCount    = "object_count"
)

// UtilizationSummary is a per-resource aggregate over the lookback window.
// A missing metric is distinct from a true zero: rules must treat absence
// as insufficient evidence, never as 0.
type UtilizationSummary map[string]float64

// Average returns the averaged value for a metric and whether it was observed.
func (u UtilizationSummary) Average(metric string) (float64, bool) {
	if u == nil {
		return 0, false
	}
	v, ok := u[metric]
	return v, ok
}
