package entities

import (
	"time"

	"github.com/google/uuid"
)

// BranchEventType names a change to the branch directory
type BranchEventType string

const (
	// BranchEventReindexed is published after the search index was rebuilt
	BranchEventReindexed BranchEventType = "branches.reindexed"
	// BranchEventSeeded is published after sample branches were loaded
	BranchEventSeeded BranchEventType = "branches.seeded"
	// BranchEventMigrated is published after the schema version changed
	BranchEventMigrated BranchEventType = "branches.migrated"
)

// BranchEvent announces that cached branch data may be stale
type BranchEvent struct {
	ID        string          `json:"id"`
	Type      BranchEventType `json:"type"`
	Source    string          `json:"source"`
	Branches  int             `json:"branches,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewBranchEvent creates a new branch event
func NewBranchEvent(eventType BranchEventType, source string, branches int) *BranchEvent {
	return &BranchEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    source,
		Branches:  branches,
		Timestamp: time.Now().UTC(),
	}
}
