package storage

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/casedesk/casedesk/storage/model"
)

// UpdatesStorage implements model.UpdateStore using GORM.
//
// Every mutation runs in one transaction together with the refresh of the
// owning case's last sub-status.
type UpdatesStorage struct {
	db              *gorm.DB
	tolerateMissing bool
}

// newestFirst orders updates by timestamp, then by insertion order
var newestFirst = clause.OrderBy{
	Columns: []clause.OrderByColumn{
		{
			Column: clause.Column{Name: "timestamp"},
			Desc:   true,
		},
		{
			Column: clause.Column{Name: "id"},
			Desc:   true,
		},
	},
}

// List returns the updates of the passed case, or all updates if caseID is
// nil, newest first
func (s *UpdatesStorage) List(caseID *string) ([]model.Update, error) {
	query := s.db.Model(&model.Update{})
	if caseID != nil {
		query = query.Where("case_id = ?", *caseID)
	}
	updates := []model.Update{}
	if err := query.Clauses(newestFirst).Find(&updates).Error; err != nil {
		return nil, errors.Wrap(err, "updates: list failed")
	}
	return updates, nil
}

// Get returns the update with the passed id or nil if there is none
func (s *UpdatesStorage) Get(id uint) (*model.Update, error) {
	var u model.Update
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "updates: get failed")
	}
	return &u, nil
}

// Create inserts an update for an existing case and returns the new id
func (s *UpdatesStorage) Create(u model.Update) (uint, error) {
	if strings.TrimSpace(u.CaseID) == "" {
		return 0, model.ValidationError("case_id is required")
	}
	u.ID = 0
	u.Timestamp = u.Timestamp.UTC()
	err := s.db.Transaction(
		func(tx *gorm.DB) error {
			if err := requireCase(tx, u.CaseID); err != nil {
				return err
			}
			if err := tx.Create(&u).Error; err != nil {
				if isForeignKeyError(err) {
					return model.NotFoundErrorFmt("case not found: %s", u.CaseID)
				}
				return errors.Wrap(err, "updates: create failed")
			}
			return refreshLastSubStatus(tx, u.CaseID)
		},
	)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// Update replaces an update. If the update moves to another case, both cases
// get their last sub-status refreshed.
func (s *UpdatesStorage) Update(id uint, u model.Update) error {
	if strings.TrimSpace(u.CaseID) == "" {
		return model.ValidationError("case_id is required")
	}
	return s.db.Transaction(
		func(tx *gorm.DB) error {
			var current model.Update
			if err := tx.First(&current, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					if s.tolerateMissing {
						return nil
					}
					return model.NotFoundErrorFmt("update not found: %d", id)
				}
				return errors.Wrap(err, "updates: update failed")
			}
			if current.CaseID != u.CaseID {
				if err := requireCase(tx, u.CaseID); err != nil {
					return err
				}
			}
			err := tx.Model(&model.Update{}).
				Where("id = ?", id).
				Select("case_id", "note", "updated_by", "timestamp", "sub_status").
				Updates(
					&model.Update{
						CaseID:    u.CaseID,
						Note:      u.Note,
						UpdatedBy: u.UpdatedBy,
						Timestamp: u.Timestamp.UTC(),
						SubStatus: u.SubStatus,
					},
				).Error
			if err != nil {
				return errors.Wrap(err, "updates: update failed")
			}
			if current.CaseID != u.CaseID {
				if err = refreshLastSubStatus(tx, current.CaseID); err != nil {
					return err
				}
			}
			return refreshLastSubStatus(tx, u.CaseID)
		},
	)
}

// Delete removes an update. Deleting a missing update is not an error.
func (s *UpdatesStorage) Delete(id uint) error {
	return s.db.Transaction(
		func(tx *gorm.DB) error {
			var current model.Update
			if err := tx.First(&current, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return errors.Wrap(err, "updates: delete failed")
			}
			if err := tx.Delete(&model.Update{}, id).Error; err != nil {
				return errors.Wrap(err, "updates: delete failed")
			}
			return refreshLastSubStatus(tx, current.CaseID)
		},
	)
}

func requireCase(tx *gorm.DB, caseID string) error {
	var count int64
	if err := tx.Model(&model.Case{}).Where("case_id = ?", caseID).Count(&count).Error; err != nil {
		return errors.Wrap(err, "updates: case lookup failed")
	}
	if count == 0 {
		return model.NotFoundErrorFmt("case not found: %s", caseID)
	}
	return nil
}
