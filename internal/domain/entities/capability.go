package entities

import (
	"fmt"
	"sort"
)

// CapabilityKey identifies a service specialization a branch may offer.
// The set is closed: only the constants below are valid keys.
type CapabilityKey string

const (
	CapabilityEV          CapabilityKey = "is_ev"
	CapabilityHydrogen    CapabilityKey = "is_hydrogen"
	CapabilityFrame       CapabilityKey = "is_frame"
	CapabilityCSExcellent CapabilityKey = "is_cs_excellent"
	CapabilityNLine       CapabilityKey = "is_n_line"
)

// AllCapabilities lists every capability in display order
var AllCapabilities = []CapabilityKey{
	CapabilityEV,
	CapabilityHydrogen,
	CapabilityFrame,
	CapabilityCSExcellent,
	CapabilityNLine,
}

// Label returns the human-readable name shown as a filter option and badge
func (k CapabilityKey) Label() string {
	switch k {
	case CapabilityEV:
		return "⚡ 전기차 전담"
	case CapabilityHydrogen:
		return "💧 수소차 전담"
	case CapabilityFrame:
		return "🔨 판금/차체 수리"
	case CapabilityCSExcellent:
		return "🏆 우수 협력점"
	case CapabilityNLine:
		return "🏎️ N-Line 전담"
	default:
		return ""
	}
}

// Valid reports whether k belongs to the closed enumeration
func (k CapabilityKey) Valid() bool {
	return k.Label() != ""
}

// Column returns the branch table column holding the flag.
// Only enumeration members produce a column name.
func (k CapabilityKey) Column() (string, error) {
	if !k.Valid() {
		return "", fmt.Errorf("unknown capability key %q", string(k))
	}
	return string(k), nil
}

// ParseCapabilityKey validates a raw key against the enumeration
func ParseCapabilityKey(raw string) (CapabilityKey, bool) {
	k := CapabilityKey(raw)
	return k, k.Valid()
}

// CapabilityFlags records which capabilities a branch offers
type CapabilityFlags map[CapabilityKey]bool

// Has reports whether the flag for k is set
func (f CapabilityFlags) Has(k CapabilityKey) bool {
	return f[k]
}

// Enabled returns the set flags in enumeration order
func (f CapabilityFlags) Enabled() []CapabilityKey {
	enabled := make([]CapabilityKey, 0, len(f))
	for _, k := range AllCapabilities {
		if f[k] {
			enabled = append(enabled, k)
		}
	}
	return enabled
}

// SortCapabilities orders keys by enumeration position and drops duplicates
func SortCapabilities(keys []CapabilityKey) []CapabilityKey {
	position := make(map[CapabilityKey]int, len(AllCapabilities))
	for i, k := range AllCapabilities {
		position[k] = i
	}

	seen := make(map[CapabilityKey]struct{}, len(keys))
	out := make([]CapabilityKey, 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi, iok := position[out[i]]
		pj, jok := position[out[j]]
		if iok && jok {
			return pi < pj
		}
		if iok != jok {
			return iok
		}
		return out[i] < out[j]
	})
	return out
}

// CapabilityOption is the key/label pair sent to clients building the filter list
type CapabilityOption struct {
	Key   CapabilityKey `json:"key"`
	Label string        `json:"label"`
}

// CapabilityOptions returns every capability with its label
func CapabilityOptions() []CapabilityOption {
	options := make([]CapabilityOption, 0, len(AllCapabilities))
	for _, k := range AllCapabilities {
		options = append(options, CapabilityOption{Key: k, Label: k.Label()})
	}
	return options
}
