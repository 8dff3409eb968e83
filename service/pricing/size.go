package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/elC0mpa/cloud-cost-doctor/model"
)

// awsSizeMagnitudes maps AWS size tokens to a monotonically increasing
// scale. Values are relative units, not vCPUs; only the ordering matters.
var awsSizeMagnitudes = map[string]float64{
	"nano":     0.25,
	"micro":    0.5,
	"small":    1,
	"medium":   2,
	"large":    4,
	"xlarge":   8,
	"2xlarge":  16,
	"3xlarge":  24,
	"4xlarge":  32,
	"6xlarge":  48,
	"8xlarge":  64,
	"9xlarge":  72,
	"10xlarge": 80,
	"12xlarge": 96,
	"16xlarge": 128,
	"18xlarge": 144,
	"24xlarge": 192,
}

// awsSizeDowngrades is the one-step "smaller size" table. Chains are never
// followed; a size without an entry is left unrecommended.
var awsSizeDowngrades = map[string]string{
	"micro":    "nano",
	"small":    "micro",
	"medium":   "small",
	"large":    "medium",
	"xlarge":   "large",
	"2xlarge":  "xlarge",
	"3xlarge":  "xlarge",
	"4xlarge":  "2xlarge",
	"6xlarge":  "3xlarge",
	"8xlarge":  "4xlarge",
	"9xlarge":  "4xlarge",
	"10xlarge": "4xlarge",
	"12xlarge": "6xlarge",
	"16xlarge": "8xlarge",
	"18xlarge": "9xlarge",
	"24xlarge": "12xlarge",
}

var gcpSharedCoreMagnitudes = map[string]float64{
	"micro":  0.5,
	"small":  1,
	"medium": 2,
}

var gcpSharedCoreDowngrades = map[string]string{
	"small":  "micro",
	"medium": "small",
}

// Matches Azure sizes such as Standard_D4s_v3, Standard_B2ms, Standard_F16s_v2
var azureSizeRegex = regexp.MustCompile(`^Standard_([A-Z]+)(\d+)([a-z]*)(_v\d+)?$`)

// ParseSize derives the opaque (family, magnitude) pair from a provider
// size identifier. The engine never interprets the identifier beyond this.
func ParseSize(provider model.Provider, size string) (SizeClass, error) {
	switch provider {
	case model.ProviderAWS:
		return parseAWSSize(size)
	case model.ProviderAzure:
		return parseAzureSize(size)
	case model.ProviderGCP:
		return parseGCPSize(size)
	default:
		return SizeClass{}, fmt.Errorf("%w: %q (provider %s)", ErrUnknownSize, size, provider)
	}
}

// Downgrade returns the one-step smaller size identifier for the same
// family, or false when no smaller size is known
func Downgrade(provider model.Provider, size string) (string, bool) {
	switch provider {
	case model.ProviderAWS:
		idx := strings.LastIndex(size, ".")
		if idx <= 0 {
			return "", false
		}
		smaller, ok := awsSizeDowngrades[size[idx+1:]]
		if !ok {
			return "", false
		}
		return size[:idx] + "." + smaller, true

	case model.ProviderAzure:
		m := azureSizeRegex.FindStringSubmatch(size)
		if m == nil {
			return "", false
		}
		n, _ := strconv.Atoi(m[2])
		if n < 2 || n%2 != 0 {
			return "", false
		}
		return fmt.Sprintf("Standard_%s%d%s%s", m[1], n/2, m[3], m[4]), true

	case model.ProviderGCP:
		idx := strings.LastIndex(size, "-")
		if idx <= 0 {
			return "", false
		}
		suffix := size[idx+1:]
		if n, err := strconv.Atoi(suffix); err == nil {
			if n < 4 {
				return "", false
			}
			return fmt.Sprintf("%s-%d", size[:idx], n/2), true
		}
		smaller, ok := gcpSharedCoreDowngrades[suffix]
		if !ok {
			return "", false
		}
		return size[:idx] + "-" + smaller, true
	}

	return "", false
}

func parseAWSSize(size string) (SizeClass, error) {
	idx := strings.LastIndex(size, ".")
	if idx <= 0 || idx == len(size)-1 {
		return SizeClass{}, fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
	magnitude, ok := awsSizeMagnitudes[size[idx+1:]]
	if !ok {
		return SizeClass{}, fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
	return SizeClass{Family: size[:idx], Magnitude: magnitude}, nil
}

func parseAzureSize(size string) (SizeClass, error) {
	m := azureSizeRegex.FindStringSubmatch(size)
	if m == nil {
		return SizeClass{}, fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
	cores, err := strconv.Atoi(m[2])
	if err != nil || cores == 0 {
		return SizeClass{}, fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
	return SizeClass{Family: m[1] + m[3] + m[4], Magnitude: float64(cores)}, nil
}

func parseGCPSize(size string) (SizeClass, error) {
	idx := strings.LastIndex(size, "-")
	if idx <= 0 || idx == len(size)-1 {
		return SizeClass{}, fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
	suffix := size[idx+1:]
	if n, err := strconv.Atoi(suffix); err == nil {
		return SizeClass{Family: size[:idx], Magnitude: float64(n)}, nil
	}
	magnitude, ok := gcpSharedCoreMagnitudes[suffix]
	if !ok {
		return SizeClass{}, fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
	return SizeClass{Family: size[:idx], Magnitude: magnitude}, nil
}
