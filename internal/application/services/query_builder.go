package services

import (
	"strings"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/repositories"
	apperrors "github.com/bluehands/branchfinder/pkg/errors"
)

// BuildQuery turns user criteria into a validated query descriptor.
// Unknown capability keys are rejected rather than dropped.
func BuildQuery(criteria entities.SearchCriteria) (repositories.QueryDescriptor, error) {
	for _, k := range criteria.Capabilities {
		if !k.Valid() {
			return repositories.QueryDescriptor{}, apperrors.NewInvalidCapabilityError(string(k))
		}
	}

	normalized := criteria.Normalized()
	query := repositories.QueryDescriptor{
		Term:         normalized.Term,
		Capabilities: normalized.Capabilities,
	}
	if normalized.HasRegion() {
		query.Region = normalized.Region
	}
	return query, nil
}

// ParseCapabilities validates raw capability keys from a request.
// Blank entries are ignored; anything else outside the enumeration is an error.
func ParseCapabilities(raw []string) ([]entities.CapabilityKey, error) {
	keys := make([]entities.CapabilityKey, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		k, ok := entities.ParseCapabilityKey(r)
		if !ok {
			return nil, apperrors.NewInvalidCapabilityError(r)
		}
		keys = append(keys, k)
	}
	return entities.SortCapabilities(keys), nil
}
