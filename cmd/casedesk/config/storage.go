package config

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/casedesk/casedesk/storage"
	"github.com/casedesk/casedesk/storage/model"
)

type storageConf struct {
	Driver  storage.DriverType `yaml:"driver"`
	DataDir string             `yaml:"data_dir"`
	DSN     string             `yaml:"dsn"`
	storage.DSNConf `yaml:",inline"`
	Debug           bool `yaml:"debug"`
	TolerateMissing bool `yaml:"tolerate_missing"`
}

func (c *storageConf) validate() error {
	if c.Driver == storage.DriverSQLite {
		if c.DataDir == "" && c.DSN == "" {
			return errors.New("error in storage conf: data_dir must be specified")
		}
		return nil
	}
	var err error
	if c.DSN == "" {
		c.DSN, err = storage.DSN(c.Driver, c.DSNConf)
	}
	return err
}

var defaultStorageConf = storageConf{
	Driver: storage.DriverSQLite,
	DSNConf: storage.DSNConf{
		User: "casedesk",
		Host: "localhost",
		DB:   "casedesk",
	},
}

// StorageConfig returns the storage.Config for the passed storageConf
func StorageConfig(c storageConf) storage.Config {
	return storage.Config{
		Driver:          c.Driver,
		DSN:             c.DSN,
		DataDir:         c.DataDir,
		Debug:           c.Debug,
		TolerateMissing: c.TolerateMissing,
	}
}

// LoadStorageBackends loads and returns the storage backends for the passed Config
func LoadStorageBackends(c storageConf) (model.Backends, error) {
	backs, err := storage.LoadStorageBackends(StorageConfig(c))
	if err != nil {
		return model.Backends{}, err
	}
	log.WithField("driver", c.Driver).Info("Loaded storage backend")
	return backs, nil
}
