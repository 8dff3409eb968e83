package model

// Inventory is what one provider+region collection pass hands to the
// recommendation engine: shaped resources, averaged utilization keyed by
// resource ID, and storage metadata keyed by bucket ID. A region that
// failed to enumerate simply contributes an empty Inventory.
type Inventory struct {
	Provider    Provider
	Region      string
	Resources   []Resource
	Utilization map[string]UtilizationSummary
	Buckets     map[string]BucketMetadata
}

// Merge appends another inventory's records into this one
func (inv *Inventory) Merge(other Inventory) {
	inv.Resources = append(inv.Resources, other.Resources...)
	if inv.Utilization == nil {
		inv.Utilization = make(map[string]UtilizationSummary)
	}
	for id, u := range other.Utilization {
		inv.Utilization[id] = u
	}
	if inv.Buckets == nil {
		inv.Buckets = make(map[string]BucketMetadata)
	}
	for id, b := range other.Buckets {
		inv.Buckets[id] = b
	}
}
