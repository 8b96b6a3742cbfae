package storage

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/casedesk/casedesk/storage/model"
)

// DriverType names a supported database
type DriverType string

// Supported drivers; an empty DriverType means sqlite
const (
	DriverSQLite   DriverType = "sqlite"
	DriverMySQL    DriverType = "mysql"
	DriverPostgres DriverType = "postgres"
)

const sqliteFile = "casedesk.db"

// sqliteParams turns on foreign keys for the update cascade and makes
// writers wait for the lock instead of failing.
const sqliteParams = "?_foreign_keys=on&_busy_timeout=5000"

// mysqlTableOptions makes text comparisons exact, as on the other drivers
const mysqlTableOptions = "CHARSET=utf8mb4 COLLATE=utf8mb4_bin"

// DSNConf holds the connection parameters from which DSN builds a
// connection string for mysql or postgres
type DSNConf struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       string `yaml:"db"`
}

// DSN builds the connection string for driver from conf. The driver's
// default port is used if conf.Port is unset.
func DSN(driver DriverType, conf DSNConf) (string, error) {
	switch driver {
	case DriverMySQL:
		if conf.Port == 0 {
			conf.Port = 3306
		}
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True",
			conf.User, conf.Password, conf.Host, conf.Port, conf.DB,
		), nil
	case DriverPostgres:
		if conf.Port == 0 {
			conf.Port = 5432
		}
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d",
			conf.Host, conf.User, conf.Password, conf.DB, conf.Port,
		), nil
	case DriverSQLite, "":
		return "", errors.Errorf("driver %s is configured with data_dir, not a dsn", DriverSQLite)
	default:
		return "", errors.Errorf("unsupported driver '%s'", driver)
	}
}

// Config selects and configures the database
type Config struct {
	Driver DriverType `yaml:"driver"`
	// DSN is the connection string. For sqlite it is optional and defaults to
	// casedesk.db in DataDir.
	DSN     string `yaml:"dsn"`
	DataDir string `yaml:"data_dir"`
	// Debug logs every sql statement
	Debug bool `yaml:"debug"`
	// TolerateMissing turns NotFound on case and update edits into a silent
	// no-op
	TolerateMissing bool `yaml:"tolerate_missing"`
}

func (cfg Config) isSQLite() bool {
	return cfg.Driver == DriverSQLite || cfg.Driver == ""
}

func (cfg Config) dialector() (gorm.Dialector, error) {
	switch {
	case cfg.isSQLite():
		dsn := cfg.DSN
		if dsn == "" {
			dsn = filepath.Join(cfg.DataDir, sqliteFile) + sqliteParams
		}
		return sqlite.Open(dsn), nil
	case cfg.Driver == DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	case cfg.Driver == DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, errors.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// Connect opens the configured database. Sqlite is limited to one open
// connection, the single writer.
func Connect(cfg Config) (*gorm.DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}
	logMode := logger.Silent
	if cfg.Debug {
		logMode = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logMode)})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if cfg.isSQLite() {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// migrator returns the session used for AutoMigrate. New mysql tables get a
// binary collation so that option values and case ids compare exactly.
func (cfg Config) migrator(db *gorm.DB) *gorm.DB {
	if cfg.Driver == DriverMySQL {
		return db.Set("gorm:table_options", mysqlTableOptions)
	}
	return db
}

// LoadStorageBackends opens the storage and returns its backends
func LoadStorageBackends(cfg Config) (model.Backends, error) {
	warehouse, err := NewStorage(cfg)
	if err != nil {
		return model.Backends{}, err
	}
	return warehouse.Backends(), nil
}
