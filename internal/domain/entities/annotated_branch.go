package entities

// DistanceLabelPermissionNeeded is shown when the user location is unknown
const DistanceLabelPermissionNeeded = "⚠️ 권한 필요"

// AnnotatedBranch is a branch enriched for a single search result view
type AnnotatedBranch struct {
	BranchRecord
	Location           Coordinate           `json:"location"`
	DistanceFromUserKm *float64             `json:"distance_km,omitempty"`
	DistanceLabel      string               `json:"distance_label"`
	Category           PresentationCategory `json:"category"`
	PinColor           string               `json:"pin_color"`
	Badges             []string             `json:"badges"`
}

// MapMarker is the lightweight projection used to draw every result on the map
type MapMarker struct {
	ID            int64                `json:"id"`
	Name          string               `json:"name"`
	Location      Coordinate           `json:"location"`
	Category      PresentationCategory `json:"category"`
	PinColor      string               `json:"pin_color"`
	DistanceLabel string               `json:"distance_label"`
}

// Marker projects the branch onto a map marker
func (b AnnotatedBranch) Marker() MapMarker {
	return MapMarker{
		ID:            b.ID,
		Name:          b.Name,
		Location:      b.Location,
		Category:      b.Category,
		PinColor:      b.PinColor,
		DistanceLabel: b.DistanceLabel,
	}
}
