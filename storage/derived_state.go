package storage

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/casedesk/casedesk/storage/model"
)

// refreshLastSubStatus sets the case's last_sub_status to the sub-status of
// its latest update, or NULL if it has none. It must be called with the
// transaction that changed the updates.
func refreshLastSubStatus(tx *gorm.DB, caseID string) error {
	var latest []model.Update
	err := tx.Model(&model.Update{}).
		Where("case_id = ?", caseID).
		Clauses(newestFirst).
		Limit(1).
		Find(&latest).Error
	if err != nil {
		return errors.Wrap(err, "cases: derive last sub-status failed")
	}
	var subStatus *string
	if len(latest) > 0 {
		subStatus = &latest[0].SubStatus
	}
	err = tx.Model(&model.Case{}).
		Where("case_id = ?", caseID).
		UpdateColumn("last_sub_status", subStatus).Error
	return errors.Wrap(err, "cases: store last sub-status failed")
}
