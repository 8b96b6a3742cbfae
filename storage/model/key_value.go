package model

import (
	"time"

	"gorm.io/datatypes"
)

// Key-value scopes and keys in use
const (
	KeyValueScopeGlobal = ""
	KeyValueScopeImport = "import"

	KeyValueKeyLastImportReport = "last_report"
)

// KeyValue is a JSON value stored under a (scope, key) pair. It holds small
// bookkeeping records such as the report of the last workbook import.
type KeyValue struct {
	Scope     string         `gorm:"primaryKey;size:64" json:"scope"`
	Key       string         `gorm:"primaryKey;size:128" json:"key"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// KeyValueStore defines scoped key-value access with JSON-serialized values.
type KeyValueStore interface {
	// Get retrieves the value for a (scope, key). Returns (nil, nil) if not found.
	Get(scope, key string) (datatypes.JSON, error)
	// Set stores/replaces the value for a (scope, key).
	Set(scope, key string, value datatypes.JSON) error
	// Delete removes the entry for a (scope, key). No error if missing.
	Delete(scope, key string) error
	// GetAs unmarshals the value for (scope, key) into out; false if not found.
	GetAs(scope, key string, out any) (bool, error)
	// SetAny marshals v to JSON and stores it at (scope, key).
	SetAny(scope, key string, v any) error
}

// SaveImportReport stores r as the last import report.
func SaveImportReport(kv KeyValueStore, r ImportReport) error {
	return kv.SetAny(KeyValueScopeImport, KeyValueKeyLastImportReport, r)
}

// LastImportReport returns the report of the last import or nil if no import
// has run yet.
func LastImportReport(kv KeyValueStore) (*ImportReport, error) {
	var r ImportReport
	found, err := kv.GetAs(KeyValueScopeImport, KeyValueKeyLastImportReport, &r)
	if err != nil || !found {
		return nil, err
	}
	return &r, nil
}
