package services

import (
	"fmt"

	"github.com/bluehands/branchfinder/internal/domain/entities"
)

// Annotate attaches distance and presentation data to each record.
// Order is preserved; records without two finite coordinates are skipped.
func Annotate(records []entities.BranchRecord, user *entities.Coordinate) []entities.AnnotatedBranch {
	annotated := make([]entities.AnnotatedBranch, 0, len(records))
	for _, r := range records {
		loc, ok := r.Coordinate.Parse()
		if !ok {
			continue
		}

		category := entities.CategoryForType(r.TypeID)
		item := entities.AnnotatedBranch{
			BranchRecord: r,
			Location:     loc,
			Category:     category,
			PinColor:     category.PinColor(),
			Badges:       badges(r.Capabilities),
		}
		if d, ok := DistanceKm(&loc, user); ok {
			item.DistanceFromUserKm = &d
		}
		item.DistanceLabel = DistanceLabel(item.DistanceFromUserKm)

		annotated = append(annotated, item)
	}
	return annotated
}

// DistanceLabel formats a distance for display. Sub-kilometer distances are
// truncated to whole meters.
func DistanceLabel(km *float64) string {
	if km == nil {
		return entities.DistanceLabelPermissionNeeded
	}
	if *km < 1 {
		return fmt.Sprintf("%dm", int(*km*1000))
	}
	return fmt.Sprintf("%.1fkm", *km)
}

func badges(flags entities.CapabilityFlags) []string {
	enabled := flags.Enabled()
	out := make([]string, 0, len(enabled))
	for _, k := range enabled {
		out = append(out, k.Label())
	}
	return out
}
