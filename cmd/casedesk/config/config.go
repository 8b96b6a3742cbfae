// Package config loads the casedesk yaml configuration.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/zachmann/go-utils/fileutils"
	"gopkg.in/yaml.v3"

	"github.com/casedesk/casedesk"
)

// Environment variables that override the configuration
const (
	EnvConfigFile = "CASEDESK_CONFIG"
	EnvDBDSN      = "CASEDESK_DB_DSN"
)

var possibleConfigLocations = []string{
	".",
	"config",
	"/config",
	"/casedesk/config",
	"/casedesk",
	"/data/config",
	"/data",
	"/etc/casedesk",
}

// Config holds all configuration of casedesk
type Config struct {
	Server  casedesk.ServerConf `yaml:"server"`
	Storage storageConf         `yaml:"storage"`
	Logging loggingConf         `yaml:"logging"`
	API     apiConf             `yaml:"api"`
}

var c *Config

// Get returns the loaded Config
func Get() *Config {
	return c
}

func defaultConfig() Config {
	return Config{
		Server:  defaultServerConf,
		Storage: defaultStorageConf,
		Logging: defaultLoggingConf,
		API:     defaultAPIConf,
	}
}

var defaultServerConf = casedesk.ServerConf{
	Port: 8765,
}

func (conf *Config) validate() error {
	if conf.Server.Port == 0 {
		conf.Server.Port = defaultServerConf.Port
	}
	if conf.Server.TLS.Enabled {
		if conf.Server.TLS.Cert == "" || conf.Server.TLS.Key == "" {
			return errors.New("error in server conf: tls enabled but cert or key not set")
		}
	}
	if err := conf.Logging.validate(); err != nil {
		return err
	}
	return conf.Storage.validate()
}

// Load reads the config file. A .env file in the working directory is loaded
// first, so its variables can point to the config file and override the
// database dsn. If configFile is empty, the file is searched in the default
// locations.
func Load(configFile string) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		log.WithError(err).Warn("could not load .env file")
	}
	if configFile == "" {
		configFile = os.Getenv(EnvConfigFile)
	}
	conf, err := load(configFile)
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}
	c = conf
}

func load(configFile string) (*Config, error) {
	data, err := readConfigFile(configFile)
	if err != nil {
		return nil, err
	}
	conf := defaultConfig()
	if err = yaml.Unmarshal(data, &conf); err != nil {
		return nil, errors.Wrap(err, "could not parse config file")
	}
	if dsn := os.Getenv(EnvDBDSN); dsn != "" {
		conf.Storage.DSN = dsn
	}
	if err = conf.validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func readConfigFile(configFile string) ([]byte, error) {
	if configFile != "" {
		if !fileutils.FileExists(configFile) {
			return nil, errors.Errorf("config file '%s' does not exist", configFile)
		}
		data, err := os.ReadFile(configFile)
		return data, errors.WithStack(err)
	}
	for _, dir := range possibleConfigLocations {
		for _, name := range []string{"config.yaml", "config.yml", "casedesk.yaml"} {
			p := dir + "/" + name
			if fileutils.FileExists(p) {
				log.WithField("file", p).Debug("found config file")
				data, err := os.ReadFile(p)
				return data, errors.WithStack(err)
			}
		}
	}
	return nil, errors.New("could not find config file in any of the default locations")
}
