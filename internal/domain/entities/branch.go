package entities

// BranchRecord represents a service center as stored in the branch directory
type BranchRecord struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Coordinate   RawCoordinate   `json:"coordinate"`
	Address      string          `json:"address"`
	Phone        string          `json:"phone"`
	TypeID       int             `json:"type_id"`
	Region       string          `json:"region,omitempty"`
	Capabilities CapabilityFlags `json:"capabilities"`
}

// PresentationCategory is the marker/badge style derived from a branch type
type PresentationCategory string

const (
	CategorySpecialist PresentationCategory = "specialist"
	CategoryGeneral    PresentationCategory = "general"
	CategoryHighTech   PresentationCategory = "high-tech"
	CategoryDefault    PresentationCategory = "default"
)

// CategoryForType maps a branch type id onto its presentation category.
// Unknown ids map to CategoryDefault.
func CategoryForType(typeID int) PresentationCategory {
	switch typeID {
	case 1:
		return CategorySpecialist
	case 2:
		return CategoryGeneral
	case 3:
		return CategoryHighTech
	default:
		return CategoryDefault
	}
}

// PinColor returns the map marker color for the category
func (c PresentationCategory) PinColor() string {
	switch c {
	case CategorySpecialist:
		return "purple"
	case CategoryGeneral:
		return "blue"
	case CategoryHighTech:
		return "green"
	default:
		return "gray"
	}
}
