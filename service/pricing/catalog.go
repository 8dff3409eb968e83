package pricing

import "github.com/elC0mpa/cloud-cost-doctor/model"

// staticCatalog is the default Catalog: on-demand Linux hourly prices for
// the size vocabularies the collectors report. Values approximate public
// us-east-1 / eastus list prices and only need to preserve relative order.
type staticCatalog struct {
	entries map[catalogKey]float64
}

// NewStaticCatalog builds the default immutable pricing catalog
func NewStaticCatalog() Catalog {
	c := &staticCatalog{entries: make(map[catalogKey]float64)}

	instances := map[string]float64{
		// AWS EC2
		"t3.nano":     0.0052,
		"t3.micro":    0.0104,
		"t3.small":    0.0208,
		"t3.medium":   0.0416,
		"t3.large":    0.0832,
		"t3.xlarge":   0.1664,
		"t3.2xlarge":  0.3328,
		"m5.large":    0.096,
		"m5.xlarge":   0.192,
		"m5.2xlarge":  0.384,
		"m5.4xlarge":  0.768,
		"m5.8xlarge":  1.536,
		"m5.12xlarge": 2.304,
		"m5.16xlarge": 3.072,
		"m5.24xlarge": 4.608,
		"c5.large":    0.085,
		"c5.xlarge":   0.17,
		"c5.2xlarge":  0.34,
		"c5.4xlarge":  0.68,
		"c5.9xlarge":  1.53,
		"c5.12xlarge": 2.04,
		"c5.18xlarge": 3.06,
		"c5.24xlarge": 4.08,
		"r5.large":    0.126,
		"r5.xlarge":   0.252,
		"r5.2xlarge":  0.504,
		"r5.4xlarge":  1.008,
		"r5.8xlarge":  2.016,
		"r5.12xlarge": 3.024,
		"r5.16xlarge": 4.032,
		"r5.24xlarge": 6.048,

		// Azure VMs
		"Standard_B1s":      0.0104,
		"Standard_B2s":      0.0416,
		"Standard_B2ms":     0.0832,
		"Standard_D2s_v3":   0.096,
		"Standard_D4s_v3":   0.192,
		"Standard_D8s_v3":   0.384,
		"Standard_D16s_v3":  0.768,
		"Standard_D32s_v3":  1.536,
		"Standard_E2s_v3":   0.126,
		"Standard_E4s_v3":   0.252,
		"Standard_E8s_v3":   0.504,
		"Standard_E16s_v3":  1.008,
		"Standard_F2s_v2":   0.085,
		"Standard_F4s_v2":   0.169,
		"Standard_F8s_v2":   0.338,
		"Standard_F16s_v2":  0.677,

		// GCP machine types
		"e2-micro":       0.0084,
		"e2-small":       0.0168,
		"e2-medium":      0.0335,
		"e2-standard-2":  0.067,
		"e2-standard-4":  0.134,
		"e2-standard-8":  0.268,
		"e2-standard-16": 0.536,
		"n2-standard-2":  0.097,
		"n2-standard-4":  0.194,
		"n2-standard-8":  0.388,
		"n2-standard-16": 0.776,
	}
	for size, price := range instances {
		c.entries[catalogKey{model.KindComputeInstance, size}] = price
	}

	databases := map[string]float64{
		"db.t3.micro":   0.017,
		"db.t3.small":   0.034,
		"db.t3.medium":  0.068,
		"db.t3.large":   0.136,
		"db.t3.xlarge":  0.272,
		"db.t3.2xlarge": 0.544,
		"db.m5.large":   0.171,
		"db.m5.xlarge":  0.342,
		"db.m5.2xlarge": 0.684,
		"db.m5.4xlarge": 1.368,
		"db.r5.large":   0.24,
		"db.r5.xlarge":  0.48,
		"db.r5.2xlarge": 0.96,
		"db.r5.4xlarge": 1.92,
	}
	for size, price := range databases {
		c.entries[catalogKey{model.KindManagedDatabase, size}] = price
	}

	return c
}

func (c *staticCatalog) PriceOf(kind model.ResourceKind, size string) (float64, bool) {
	price, ok := c.entries[catalogKey{kind, size}]
	return price, ok
}
