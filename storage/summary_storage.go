package storage

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/casedesk/casedesk/storage/model"
)

// SummaryStorage implements model.SummaryStore using GORM
type SummaryStorage struct {
	db *gorm.DB
}

type statusCount struct {
	CaseStatus string
	Count      int64
}

// Counts returns the total number of cases and the number of cases per
// canonical status. All counts are read in one query.
func (s *SummaryStorage) Counts() (model.SummaryCounts, error) {
	counts := model.NewSummaryCounts()
	var rows []statusCount
	err := s.db.Model(&model.Case{}).
		Select("case_status, COUNT(*) AS count").
		Group("case_status").
		Scan(&rows).Error
	if err != nil {
		return counts, errors.Wrap(err, "summary: count failed")
	}
	for _, r := range rows {
		counts.Total += r.Count
		if model.IsCanonicalCaseStatus(r.CaseStatus) {
			counts.ByStatus[r.CaseStatus] = r.Count
		} else {
			counts.Unbucketed += r.Count
		}
	}
	return counts, nil
}
