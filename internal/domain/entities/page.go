package entities

const (
	// DefaultPageSize is the number of table rows per page
	DefaultPageSize = 5
	// DefaultBlockSize is the number of page links shown at once
	DefaultBlockSize = 10
)

// Page is one slice of an annotated result set
type Page struct {
	Items      []AnnotatedBranch `json:"items"`
	PageIndex  int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

// PaginationWindow is the block of page numbers around the current page
type PaginationWindow struct {
	Current       int   `json:"current"`
	Start         int   `json:"start"`
	End           int   `json:"end"`
	TotalPages    int   `json:"total_pages"`
	Pages         []int `json:"pages"`
	HasPrevBlock  bool  `json:"has_prev_block"`
	HasNextBlock  bool  `json:"has_next_block"`
	PrevBlockPage int   `json:"prev_block_page,omitempty"`
	NextBlockPage int   `json:"next_block_page,omitempty"`
}

// NavigationKind enumerates the page selector controls
type NavigationKind string

const (
	NavigateNone      NavigationKind = ""
	NavigateToPage    NavigationKind = "page"
	NavigatePrevBlock NavigationKind = "prev_block"
	NavigateNextBlock NavigationKind = "next_block"
)

// Navigation is a single page selector action
type Navigation struct {
	Kind NavigationKind `json:"kind,omitempty"`
	Page int            `json:"page,omitempty"`
}

// GoToPage builds a direct page selection
func GoToPage(page int) Navigation {
	return Navigation{Kind: NavigateToPage, Page: page}
}

// ParseNavigationKind accepts the wire names of the block controls
func ParseNavigationKind(raw string) (NavigationKind, bool) {
	switch NavigationKind(raw) {
	case NavigateNone, NavigateToPage, NavigatePrevBlock, NavigateNextBlock:
		return NavigationKind(raw), true
	default:
		return NavigateNone, false
	}
}
