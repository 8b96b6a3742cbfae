// Package logger sets up the internal logrus logger and the access log.
package logger

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/casedesk/casedesk/cmd/casedesk/config"
)

const (
	internalLogFile = "casedesk.log"
	accessLogFile   = "access.log"
)

var accessLogger io.Writer = os.Stdout

// Init initializes the internal logger and the access log writer from the
// loaded config
func Init() {
	conf := config.Get().Logging
	log.SetFormatter(
		&log.TextFormatter{
			FullTimestamp: true,
		},
	)
	level, err := log.ParseLevel(conf.Internal.Level)
	if err != nil {
		log.WithError(err).WithField("level", conf.Internal.Level).Error("unknown log level, using INFO")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(mustWriter(conf.Internal.LoggerConf, internalLogFile, os.Stderr))
	accessLogger = mustWriter(conf.Access, accessLogFile, os.Stdout)
}

// AccessLogger returns the writer for the access log
func AccessLogger() io.Writer {
	return accessLogger
}

func mustWriter(conf config.LoggerConf, filename string, std io.Writer) io.Writer {
	if conf.Dir == "" {
		return std
	}
	file, err := os.OpenFile(filepath.Join(conf.Dir, filename), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.WithError(err).Fatal("could not open log file")
	}
	if conf.StdErr {
		return io.MultiWriter(file, os.Stderr)
	}
	return file
}
