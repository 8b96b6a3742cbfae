package workbook

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/casedesk/casedesk/storage/model"
)

// Export writes a workbook with one row per case on the Cases sheet and one
// row per update on the Updates sheet.
func Export(w io.Writer, cases []model.Case, updates []model.Update) error {
	f, err := newWorkbook()
	if err != nil {
		return err
	}
	defer f.Close()

	for i, c := range cases {
		if err = setRow(f, SheetCases, i+2, caseRow(c)); err != nil {
			return err
		}
	}
	for i, u := range updates {
		if err = setRow(f, SheetUpdates, i+2, updateRow(u)); err != nil {
			return err
		}
	}
	return errors.Wrap(f.Write(w), "workbook: write failed")
}

// Template writes a workbook that only holds the header rows.
func Template(w io.Writer) error {
	f, err := newWorkbook()
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrap(f.Write(w), "workbook: write failed")
}

func newWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetCases); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "workbook: create cases sheet failed")
	}
	if _, err := f.NewSheet(SheetUpdates); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "workbook: create updates sheet failed")
	}
	if err := setRow(f, SheetCases, 1, headerRow(CaseColumns)); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := setRow(f, SheetUpdates, 1, headerRow(UpdateColumns)); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrapf(f.SetSheetRow(sheet, cell, &values), "workbook: write row %d of %s failed", row, sheet)
}

func headerRow(columns []string) []any {
	row := make([]any, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	return row
}

func caseRow(c model.Case) []any {
	feedback := "No"
	if c.FeedbackReceived {
		feedback = "Yes"
	}
	var csat any = ""
	if c.CSATScore.Valid {
		csat = c.CSATScore.Decimal.InexactFloat64()
	}
	return []any{
		c.CaseID,
		c.SellerID,
		c.SellerName,
		c.SpecialistID,
		c.SpecialistName,
		c.Marketplace,
		c.CaseSource,
		c.CaseStatus,
		c.Workstream,
		deref(c.ListingStartDate),
		deref(c.ListingCompletionDate),
		strings.Join(c.IssueType, listSeparator),
		c.Complexity,
		c.Priority,
		strings.Join(c.APISupported, listSeparator),
		c.IntegrationType,
		c.SellerType,
		feedback,
		csat,
		c.Notes,
		deref(c.LastSubStatus),
	}
}

func updateRow(u model.Update) []any {
	return []any{
		u.ID,
		u.CaseID,
		u.Note,
		u.UpdatedBy,
		FormatTimestamp(u.Timestamp),
		u.SubStatus,
	}
}

// FormatTimestamp renders t in UTC as YYYY-MM-DDTHH:MM:SS, followed by six
// fractional digits if t has sub-second precision.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(timestampLayout)
	}
	return t.Format(timestampFractionLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
