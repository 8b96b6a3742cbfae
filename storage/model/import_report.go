package model

import (
	"time"
)

// CoercionFallback records a spreadsheet cell that could not be converted and
// was replaced by its documented default.
type CoercionFallback struct {
	Sheet    string `json:"sheet"`
	Row      int    `json:"row"`
	Column   string `json:"column"`
	Value    string `json:"value"`
	Fallback string `json:"fallback"`
}

// ImportReport summarises a workbook import.
type ImportReport struct {
	StartedAt      time.Time          `json:"started_at"`
	FinishedAt     time.Time          `json:"finished_at"`
	CasesCreated   int                `json:"cases_created"`
	CasesSkipped   int                `json:"cases_skipped"`
	UpdatesCreated int                `json:"updates_created"`
	UpdatesSkipped int                `json:"updates_skipped"`
	Fallbacks      []CoercionFallback `json:"fallbacks"`
	// Aborted is set when the import stopped before all rows were processed.
	Aborted bool `json:"aborted,omitempty"`
}
