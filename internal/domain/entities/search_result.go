package entities

// SearchStatus tells the presentation layer which message to show
type SearchStatus string

const (
	SearchStatusOK                    SearchStatus = "ok"
	SearchStatusIdle                  SearchStatus = "idle"
	SearchStatusNoResults             SearchStatus = "no_results"
	SearchStatusInvalidCriteria       SearchStatus = "invalid_criteria"
	SearchStatusRepositoryUnavailable SearchStatus = "repository_unavailable"
)

// SearchResult is everything the map and table need for one request
type SearchResult struct {
	Status      SearchStatus     `json:"status"`
	Message     string           `json:"message,omitempty"`
	Warning     string           `json:"warning,omitempty"`
	Criteria    SearchCriteria   `json:"criteria"`
	SessionID   string           `json:"session_id,omitempty"`
	Page        Page             `json:"page"`
	Window      PaginationWindow `json:"window"`
	Markers     []MapMarker      `json:"markers"`
	MapCenter   Coordinate       `json:"map_center"`
	UserLocated bool             `json:"user_located"`
	// Results holds every annotated branch; exporters use it, the JSON API omits it
	Results []AnnotatedBranch `json:"-"`
}

// RegionList is the region selector content
type RegionList struct {
	All     string   `json:"all"`
	Regions []string `json:"regions"`
	Warning string   `json:"warning,omitempty"`
}
