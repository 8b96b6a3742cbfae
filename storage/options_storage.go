package storage

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tideland.dev/go/slices"

	"github.com/casedesk/casedesk/storage/model"
)

// OptionsStorage implements model.OptionStore using GORM
type OptionsStorage struct {
	db *gorm.DB
}

// Seed inserts the default options of all registries. Existing values,
// including values added later, are left untouched.
func (s *OptionsStorage) Seed() error {
	defaults := map[model.OptionRegistry][]string{
		model.OptionRegistryAPI:   model.DefaultAPIOptions,
		model.OptionRegistryIssue: model.DefaultIssueOptions,
	}
	return s.db.Transaction(
		func(tx *gorm.DB) error {
			for registry, values := range defaults {
				for _, v := range values {
					if err := insertOption(tx, registry, v); err != nil {
						return errors.Wrap(err, "options: seed failed")
					}
				}
			}
			return nil
		},
	)
}

func insertOption(tx *gorm.DB, registry model.OptionRegistry, value string) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(
		&model.Option{
			Registry: registry,
			Value:    value,
		},
	).Error
}

// List returns all values of a registry sorted case-insensitively
func (s *OptionsStorage) List(registry model.OptionRegistry) ([]string, error) {
	if !registry.Valid() {
		return nil, model.ValidationErrorFmt("unknown option registry: %s", registry)
	}
	values := []string{}
	err := s.db.Model(&model.Option{}).
		Where("registry = ?", registry).
		Order("LOWER(value) ASC").
		Order("value ASC").
		Pluck("value", &values).Error
	if err != nil {
		return nil, errors.Wrap(err, "options: list failed")
	}
	return values, nil
}

// Add inserts a value into a registry unless it is already present. The value
// is trimmed; blank values are rejected with a model.ValidationError.
func (s *OptionsStorage) Add(registry model.OptionRegistry, value string) error {
	if !registry.Valid() {
		return model.ValidationErrorFmt("unknown option registry: %s", registry)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return model.ValidationError("option value must not be blank")
	}
	return errors.Wrap(insertOption(s.db, registry, value), "options: add failed")
}

// UnknownValues returns the passed values that are not part of the registry.
func (s *OptionsStorage) UnknownValues(registry model.OptionRegistry, values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	known, err := s.List(registry)
	if err != nil {
		return nil, err
	}
	return slices.Subtract(values, known), nil
}

// APIOptions returns the values of the api registry
func (s *OptionsStorage) APIOptions() ([]string, error) {
	return s.List(model.OptionRegistryAPI)
}

// IssueOptions returns the values of the issue registry
func (s *OptionsStorage) IssueOptions() ([]string, error) {
	return s.List(model.OptionRegistryIssue)
}

// AddAPIOption adds a value to the api registry
func (s *OptionsStorage) AddAPIOption(value string) error {
	return s.Add(model.OptionRegistryAPI, value)
}

// AddIssueOption adds a value to the issue registry
func (s *OptionsStorage) AddIssueOption(value string) error {
	return s.Add(model.OptionRegistryIssue, value)
}
