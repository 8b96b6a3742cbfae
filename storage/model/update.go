package model

import (
	"time"
)

// Update is a timestamped note attached to a case, carrying a sub-status.
type Update struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	CaseID    string `gorm:"size:191;index;not null" json:"case_id" validate:"required"`
	Note      string `gorm:"type:text" json:"note"`
	UpdatedBy string `gorm:"size:255" json:"updated_by"`
	// Timestamp is supplied by the caller; it orders the update log.
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	SubStatus string    `gorm:"size:64" json:"sub_status" validate:"required"`
}

// UpdateStore abstracts the per-case update log. Every mutation keeps the
// owning case's LastSubStatus in sync.
type UpdateStore interface {
	// List returns the updates of one case, or all updates if caseID is nil,
	// newest first
	List(caseID *string) ([]Update, error)
	// Get returns the update or nil if it does not exist
	Get(id uint) (*Update, error)
	// Create inserts an update and returns its id
	Create(u Update) (uint, error)
	// Update replaces note, author, timestamp, sub-status and case of an update
	Update(id uint, u Update) error
	// Delete removes an update
	Delete(id uint) error
}
