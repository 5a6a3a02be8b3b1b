package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/bluehands/branchfinder/internal/domain/entities"
)

// RegionRepository lists the region names branches are grouped by
type RegionRepository interface {
	// ListRegions returns region names in the store's order
	ListRegions(ctx context.Context) ([]string, error)
}

// BranchSearchRepository executes branch queries
type BranchSearchRepository interface {
	// Search returns every branch matching the descriptor, in a stable order
	Search(ctx context.Context, query QueryDescriptor) ([]entities.BranchRecord, error)
}

// BranchRepository is the full branch store
type BranchRepository interface {
	RegionRepository
	BranchSearchRepository
}

// QueryDescriptor is a validated, normalized branch query.
// All conditions are ANDed; a zero descriptor matches every branch.
type QueryDescriptor struct {
	// Term is matched as a case-insensitive substring of name or address
	Term string
	// Capabilities must all be set; validated and sorted
	Capabilities []entities.CapabilityKey
	// Region is an exact region name; empty means any region
	Region string
}

// Unrestricted reports whether the descriptor carries no conditions
func (q QueryDescriptor) Unrestricted() bool {
	return q.Term == "" && len(q.Capabilities) == 0 && q.Region == ""
}

// CacheKey returns a stable digest of the descriptor for result caching
func (q QueryDescriptor) CacheKey() string {
	caps := make([]string, len(q.Capabilities))
	for i, c := range q.Capabilities {
		caps[i] = string(c)
	}

	h := sha256.New()
	h.Write([]byte(q.Term))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(caps, ",")))
	h.Write([]byte{0})
	h.Write([]byte(q.Region))
	return hex.EncodeToString(h.Sum(nil))
}
