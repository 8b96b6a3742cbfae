package config

import (
	"github.com/casedesk/casedesk/api/caseapi"
)

// apiConf holds API-related configuration
type apiConf struct {
	ImportEnabled bool `yaml:"import_enabled"`
}

// Options returns the caseapi.Options for this configuration
func (c apiConf) Options() *caseapi.Options {
	return &caseapi.Options{ImportEnabled: c.ImportEnabled}
}

var defaultAPIConf = apiConf{
	ImportEnabled: true,
}
