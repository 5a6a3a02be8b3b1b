package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// RegionAll is the sentinel region meaning "no region filter"
const RegionAll = "(all)"

// regionAllLocalized is the sentinel used by the Korean UI
const regionAllLocalized = "(전체)"

// SearchCriteria is the immutable set of filters chosen for one search
type SearchCriteria struct {
	Term         string          `json:"term,omitempty"`
	Capabilities []CapabilityKey `json:"capabilities,omitempty"`
	Region       string          `json:"region,omitempty"`
}

// IsAllRegions reports whether region disables region filtering
func IsAllRegions(region string) bool {
	region = strings.TrimSpace(region)
	return region == "" || region == RegionAll || region == regionAllLocalized
}

// HasRegion reports whether the criteria restrict results to one region
func (c SearchCriteria) HasRegion() bool {
	return !IsAllRegions(c.Region)
}

// IsEmpty reports whether no filter has been chosen
func (c SearchCriteria) IsEmpty() bool {
	return strings.TrimSpace(c.Term) == "" && len(c.Capabilities) == 0 && !c.HasRegion()
}

// Normalized trims the term, canonicalizes the region sentinel and orders capabilities.
// Capability validity is not checked here.
func (c SearchCriteria) Normalized() SearchCriteria {
	out := SearchCriteria{
		Term:         strings.TrimSpace(c.Term),
		Capabilities: SortCapabilities(c.Capabilities),
		Region:       strings.TrimSpace(c.Region),
	}
	if IsAllRegions(out.Region) {
		out.Region = RegionAll
	}
	if len(out.Capabilities) == 0 {
		out.Capabilities = nil
	}
	return out
}

// Fingerprint identifies the criteria independent of capability order.
// A change of fingerprint means a new search.
func (c SearchCriteria) Fingerprint() string {
	data, _ := json.Marshal(c.Normalized())
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
