package storage

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/casedesk/casedesk/storage/model"
)

// CasesStorage implements model.CaseStore using GORM
type CasesStorage struct {
	db              *gorm.DB
	tolerateMissing bool
}

// mutableCaseColumns are replaced by Update; case_id and last_sub_status are not
var mutableCaseColumns = []string{
	"seller_id",
	"seller_name",
	"specialist_id",
	"specialist_name",
	"marketplace",
	"case_source",
	"case_status",
	"workstream",
	"listing_start_date",
	"listing_completion_date",
	"issue_type",
	"complexity",
	"priority",
	"api_supported",
	"integration_type",
	"seller_type",
	"feedback_received",
	"csat_score",
	"notes",
	"updated_at",
}

// Create inserts a new case. The derived last sub-status always starts empty.
func (s *CasesStorage) Create(c model.Case) error {
	if strings.TrimSpace(c.CaseID) == "" {
		return model.ValidationError("case_id is required")
	}
	c.LastSubStatus = nil
	c.Updates = nil
	return s.db.Transaction(
		func(tx *gorm.DB) error {
			var existing int64
			if err := tx.Model(&model.Case{}).Where("case_id = ?", c.CaseID).Count(&existing).Error; err != nil {
				return errors.Wrap(err, "cases: create failed")
			}
			if existing > 0 {
				return model.AlreadyExistsErrorFmt("case already exists: %s", c.CaseID)
			}
			if err := tx.Create(&c).Error; err != nil {
				if isUniqueConstraintError(err) {
					return model.AlreadyExistsErrorFmt("case already exists: %s", c.CaseID)
				}
				return errors.Wrap(err, "cases: create failed")
			}
			return nil
		},
	)
}

// Get returns the case with the passed id or nil if there is none
func (s *CasesStorage) Get(caseID string) (*model.Case, error) {
	var c model.Case
	if err := s.db.Where("case_id = ?", caseID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "cases: get failed")
	}
	return &c, nil
}

// List returns all cases matching the active filters, ordered by case id
// (case-insensitive). Unknown filter fields and blank values are ignored.
// Matching happens in Go, so case folding covers non-ASCII text on every
// driver.
func (s *CasesStorage) List(filters model.CaseFilters) ([]model.Case, error) {
	cases := []model.Case{}
	if err := s.db.Model(&model.Case{}).Find(&cases).Error; err != nil {
		return nil, errors.Wrap(err, "cases: list failed")
	}
	if len(filters.Active()) > 0 {
		cases = filterCases(cases, filters.Matches)
	}
	sort.SliceStable(
		cases, func(i, j int) bool {
			a, b := strings.ToLower(cases[i].CaseID), strings.ToLower(cases[j].CaseID)
			if a != b {
				return a < b
			}
			return cases[i].CaseID < cases[j].CaseID
		},
	)
	return cases, nil
}

// Update replaces all mutable fields of an existing case
func (s *CasesStorage) Update(caseID string, c model.Case) error {
	return s.db.Transaction(
		func(tx *gorm.DB) error {
			var existing int64
			if err := tx.Model(&model.Case{}).Where("case_id = ?", caseID).Count(&existing).Error; err != nil {
				return errors.Wrap(err, "cases: update failed")
			}
			if existing == 0 {
				if s.tolerateMissing {
					return nil
				}
				return model.NotFoundErrorFmt("case not found: %s", caseID)
			}
			c.CaseID = caseID
			c.UpdatedAt = time.Now()
			err := tx.Model(&model.Case{}).
				Where("case_id = ?", caseID).
				Select(mutableCaseColumns).
				Updates(&c).Error
			return errors.Wrap(err, "cases: update failed")
		},
	)
}

// Delete removes a case and all of its updates. Deleting a missing case is
// not an error.
func (s *CasesStorage) Delete(caseID string) error {
	return s.db.Transaction(
		func(tx *gorm.DB) error {
			if err := tx.Where("case_id = ?", caseID).Delete(&model.Update{}).Error; err != nil {
				return errors.Wrap(err, "cases: delete updates failed")
			}
			if err := tx.Where("case_id = ?", caseID).Delete(&model.Case{}).Error; err != nil {
				return errors.Wrap(err, "cases: delete failed")
			}
			return nil
		},
	)
}

// Count returns the number of stored cases
func (s *CasesStorage) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&model.Case{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "cases: count failed")
	}
	return count, nil
}

func filterCases(cases []model.Case, keep func(model.Case) bool) []model.Case {
	filtered := make([]model.Case, 0, len(cases))
	for _, c := range cases {
		if keep(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
