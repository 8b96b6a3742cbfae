package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/casedesk/casedesk/storage/model"
)

// KeyValueStorage implements model.KeyValueStore using GORM.
type KeyValueStorage struct {
	db *gorm.DB
}

// KeyValue returns a KeyValueStorage
func (s *Storage) KeyValue() *KeyValueStorage {
	return &KeyValueStorage{db: s.db}
}

// kvKey builds the lookup condition; a struct condition would drop the
// empty global scope
func kvKey(scope, key string) map[string]any {
	return map[string]any{
		"scope": scope,
		"key":   key,
	}
}

// Get returns the JSON value for a (scope, key) or nil if there is none.
func (s *KeyValueStorage) Get(scope, key string) (datatypes.JSON, error) {
	// raw bytes, so scalar values stored with numeric affinity can be read
	var raw []byte
	row := s.db.Model(&model.KeyValue{}).
		Select("value").
		Where(kvKey(scope, key)).
		Row()
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "kv: get failed")
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// Set upserts the JSON value for a (scope, key).
func (s *KeyValueStorage) Set(scope, key string, value datatypes.JSON) error {
	kv := model.KeyValue{
		Scope:     scope,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := s.db.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{
				{Name: "scope"},
				{Name: "key"},
			},
			DoUpdates: clause.AssignmentColumns(
				[]string{
					"value",
					"updated_at",
				},
			),
		},
	).Create(&kv).Error
	return errors.Wrap(err, "kv: set failed")
}

// Delete removes a (scope, key) pair. No error if it's missing.
func (s *KeyValueStorage) Delete(scope, key string) error {
	err := s.db.Where(kvKey(scope, key)).Delete(&model.KeyValue{}).Error
	return errors.Wrap(err, "kv: delete failed")
}

// GetAs unmarshals the value for (scope, key) into out, which must be a
// pointer. Returns false if there is no value.
func (s *KeyValueStorage) GetAs(scope, key string, out any) (bool, error) {
	raw, err := s.Get(scope, key)
	if err != nil || raw == nil {
		return false, err
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrap(err, "kv: decode failed")
	}
	return true, nil
}

// SetAny marshals v to JSON and stores it at (scope, key).
func (s *KeyValueStorage) SetAny(scope, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "kv: encode failed")
	}
	return s.Set(scope, key, datatypes.JSON(b))
}
