package entities

import "time"

// PageSession holds the current page of one user's result set
type PageSession struct {
	ID          string    `json:"id"`
	CriteriaKey string    `json:"criteria_key"`
	PageIndex   int       `json:"page_index"`
	UpdatedAt   time.Time `json:"updated_at"`
}
