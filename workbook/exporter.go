package workbook

import (
	"io"

	"github.com/casedesk/casedesk/storage/model"
)

// Exporter writes workbooks from the stores
type Exporter struct {
	Cases   model.CaseStore
	Updates model.UpdateStore
}

// NewExporter returns an Exporter reading from the passed backends
func NewExporter(backends model.Backends) *Exporter {
	return &Exporter{
		Cases:   backends.Cases,
		Updates: backends.Updates,
	}
}

// Export writes the cases matching filters and all updates to w.
func (e *Exporter) Export(w io.Writer, filters model.CaseFilters) error {
	cases, err := e.Cases.List(filters)
	if err != nil {
		return err
	}
	updates, err := e.Updates.List(nil)
	if err != nil {
		return err
	}
	return Export(w, cases, updates)
}
