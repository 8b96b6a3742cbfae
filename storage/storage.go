package storage

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/casedesk/casedesk/storage/model"
)

// Storage is a GORM-based storage implementation
type Storage struct {
	db              *gorm.DB
	tolerateMissing bool
}

var models = []any{
	&model.Case{},
	&model.Update{},
	&model.Option{},
	&model.KeyValue{},
}

// NewStorage creates a new GORM-based storage
func NewStorage(config Config) (*Storage, error) {
	db, err := Connect(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err = config.migrator(db).AutoMigrate(models...); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	s := &Storage{
		db:              db,
		tolerateMissing: config.TolerateMissing,
	}
	if err = s.OptionsStorage().Seed(); err != nil {
		return nil, errors.Wrap(err, "failed to seed options")
	}
	return s, nil
}

// DB returns the underlying gorm connection
func (s *Storage) DB() *gorm.DB {
	return s.db
}

// Close closes the underlying database connection
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CasesStorage returns a CasesStorage
func (s *Storage) CasesStorage() *CasesStorage {
	return &CasesStorage{
		db:              s.db,
		tolerateMissing: s.tolerateMissing,
	}
}

// UpdatesStorage returns an UpdatesStorage
func (s *Storage) UpdatesStorage() *UpdatesStorage {
	return &UpdatesStorage{
		db:              s.db,
		tolerateMissing: s.tolerateMissing,
	}
}

// OptionsStorage returns an OptionsStorage
func (s *Storage) OptionsStorage() *OptionsStorage {
	return &OptionsStorage{db: s.db}
}

// SummaryStorage returns a SummaryStorage
func (s *Storage) SummaryStorage() *SummaryStorage {
	return &SummaryStorage{db: s.db}
}

// Backends groups the storages of this warehouse
func (s *Storage) Backends() model.Backends {
	return model.Backends{
		Cases:   s.CasesStorage(),
		Updates: s.UpdatesStorage(),
		Options: s.OptionsStorage(),
		Summary: s.SummaryStorage(),
		KV:      s.KeyValue(),
	}
}
