package workbook

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/casedesk/casedesk/storage/model"
)

// ParsedCase is a case read from a row of the Cases sheet
type ParsedCase struct {
	Row  int
	Case model.Case
}

// ParsedUpdate is an update read from a row of the Updates sheet. The ID cell
// is not part of it; imported updates get a new id.
type ParsedUpdate struct {
	Row    int
	Update model.Update
}

// Parsed is the content of an uploaded workbook
type Parsed struct {
	Cases     []ParsedCase
	Updates   []ParsedUpdate
	Fallbacks []model.CoercionFallback
}

// Parse reads a workbook. It returns a model.SchemaError if the file is not a
// workbook or a sheet is missing and a model.ValidationError if a case row has
// no Case ID. Cells that cannot be converted are replaced by their default and
// recorded in Parsed.Fallbacks.
func Parse(r io.Reader) (*Parsed, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, model.SchemaErrorFmt("could not read workbook: %s", err)
	}
	defer f.Close()

	sheets := make(map[string]bool)
	for _, s := range f.GetSheetList() {
		sheets[s] = true
	}
	for _, required := range []string{SheetCases, SheetUpdates} {
		if !sheets[required] {
			return nil, model.SchemaErrorFmt("workbook must contain the sheets %q and %q", SheetCases, SheetUpdates)
		}
	}

	p := &Parsed{}
	caseRows, err := readSheet(f, SheetCases)
	if err != nil {
		return nil, err
	}
	for _, row := range caseRows {
		c, err := p.parseCase(row)
		if err != nil {
			return nil, err
		}
		p.Cases = append(p.Cases, ParsedCase{Row: row.number, Case: c})
	}
	updateRows, err := readSheet(f, SheetUpdates)
	if err != nil {
		return nil, err
	}
	for _, row := range updateRows {
		p.Updates = append(p.Updates, ParsedUpdate{Row: row.number, Update: p.parseUpdate(row)})
	}
	return p, nil
}

// sheetRow gives access to the cells of a row by column header
type sheetRow struct {
	sheet  string
	number int
	cells  map[string]string
}

func (r sheetRow) get(column string) string {
	return strings.TrimSpace(r.cells[column])
}

// readSheet returns the non-blank data rows of a sheet. Cells are read as raw
// values, so dates may come as serial numbers.
func readSheet(f *excelize.File, sheet string) ([]sheetRow, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, model.SchemaErrorFmt("could not read sheet %q: %s", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	var out []sheetRow
	for i, cells := range rows[1:] {
		row := sheetRow{
			sheet:  sheet,
			number: i + 2,
			cells:  make(map[string]string, len(header)),
		}
		blank := true
		for j, v := range cells {
			if j >= len(header) || header[j] == "" {
				continue
			}
			if strings.TrimSpace(v) != "" {
				blank = false
			}
			row.cells[header[j]] = v
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out, nil
}

func (p *Parsed) fallback(row sheetRow, column, value string, fallback any) {
	p.Fallbacks = append(
		p.Fallbacks, model.CoercionFallback{
			Sheet:    row.sheet,
			Row:      row.number,
			Column:   column,
			Value:    value,
			Fallback: fmt.Sprint(fallback),
		},
	)
}

func (p *Parsed) parseCase(row sheetRow) (model.Case, error) {
	caseID := row.get(ColCaseID)
	if caseID == "" {
		return model.Case{}, model.ValidationError("each case row must include a Case ID")
	}
	c := model.Case{
		CaseID:           caseID,
		SellerName:       row.get(ColSellerName),
		SpecialistID:     row.get(ColSpecialistID),
		SpecialistName:   row.get(ColSpecialistName),
		Marketplace:      row.get(ColMarketplace),
		CaseSource:       row.get(ColCaseSource),
		CaseStatus:       row.get(ColCaseStatus),
		Workstream:       row.get(ColWorkstream),
		IssueType:        splitList(row.get(ColIssueType)),
		Complexity:       row.get(ColComplexity),
		Priority:         row.get(ColPriority),
		APISupported:     splitList(row.get(ColAPISupported)),
		IntegrationType:  row.get(ColIntegrationType),
		SellerType:       row.get(ColSellerType),
		FeedbackReceived: parseFeedback(row.get(ColFeedbackReceived)),
		Notes:            row.get(ColNotes),
	}

	var ok bool
	if c.SellerID, ok = parseSellerID(row.get(ColSellerID)); !ok {
		p.fallback(row, ColSellerID, row.get(ColSellerID), 0)
	}
	if c.CSATScore, ok = parseCSAT(row.get(ColCSATScore)); !ok {
		p.fallback(row, ColCSATScore, row.get(ColCSATScore), "")
	}
	if c.ListingStartDate, ok = parseDate(row.get(ColListingStartDate)); !ok {
		p.fallback(row, ColListingStartDate, row.get(ColListingStartDate), "")
	}
	if c.ListingCompletionDate, ok = parseDate(row.get(ColListingCompletionDate)); !ok {
		p.fallback(row, ColListingCompletionDate, row.get(ColListingCompletionDate), "")
	}
	return c, nil
}

func (p *Parsed) parseUpdate(row sheetRow) model.Update {
	u := model.Update{
		CaseID:    row.get(ColCaseID),
		Note:      row.get(ColNote),
		UpdatedBy: row.get(ColUpdatedBy),
		SubStatus: row.get(ColSubStatus),
	}
	var ok bool
	if u.Timestamp, ok = parseTimestamp(row.get(ColTimestamp)); !ok && u.CaseID != "" {
		p.fallback(row, ColTimestamp, row.get(ColTimestamp), FormatTimestamp(u.Timestamp))
	}
	return u
}
