package pricing

import (
	"errors"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

// Catalog resolves an hourly on-demand price for a (kind, size) pair.
// Implementations are immutable after construction and safe for
// concurrent readers.
type Catalog interface {
	PriceOf(kind model.ResourceKind, size string) (float64, bool)
}

// SizeClass is the provider-agnostic view of a size identifier: an opaque
// family token plus a monotonically increasing magnitude. Two sizes of the
// same family order the same way their real prices do.
type SizeClass struct {
	Family    string
	Magnitude float64
}

// ErrUnknownSize is returned when a size identifier cannot be parsed into
// a family/size pair. Callers skip the resource instead of guessing.
var ErrUnknownSize = errors.New("unknown size identifier")

// Monthly storage rates in USD per GB, standard S3-class approximations.
// The engine deliberately uses a static table rather than a pricing API.
const (
	StorageRateStandard    = 0.023
	StorageRateIA          = 0.0125
	StorageRateGlacier     = 0.004
	StorageRateDeepArchive = 0.00099
)

// Storage class identifiers used by lifecycle recommendations
const (
	StorageClassIA          = "STANDARD_IA"
	StorageClassGlacier     = "GLACIER"
	StorageClassDeepArchive = "DEEP_ARCHIVE"
)

// EmptyBucketAnnualCost is the nominal annual hosting cost credited for
// deleting an empty bucket
const EmptyBucketAnnualCost = 0.023 * 12

// Flat monthly rates for unused-resource detection. Like the instance
// tables these are static approximations of public list prices.
const (
	VolumeRateGBMonth       = 0.08  // general purpose SSD, USD per GB-month
	PublicIPMonthlyCost     = 3.65  // idle public/elastic IP
	LoadBalancerMonthlyCost = 16.43 // application LB base charge
)

// DefaultBaseUnitPrice is the synthetic hourly price of one magnitude unit,
// used by the fallback estimator when a size is missing from the catalog
const DefaultBaseUnitPrice = 0.10

type catalogKey struct {
	kind model.ResourceKind
	size string
}
