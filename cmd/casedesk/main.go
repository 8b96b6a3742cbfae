package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/casedesk/casedesk"
	"github.com/casedesk/casedesk/cmd/casedesk/config"
	"github.com/casedesk/casedesk/internal/logger"
	"github.com/casedesk/casedesk/internal/version"
)

func main() {
	var configFile string
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}
	config.Load(configFile)
	logger.Init()
	log.WithField("version", version.VERSION).Info("Loaded Config")
	c := config.Get()

	backs, err := config.LoadStorageBackends(c.Storage)
	if err != nil {
		log.Fatal(err)
	}

	serverConf := c.Server
	serverConf.AccessLog = logger.AccessLogger()
	cd := casedesk.NewCaseDesk(serverConf, backs, c.API.Options())
	log.Info("Initialized Server")

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info("Shutting down")
		if err := cd.Shutdown(); err != nil {
			log.WithError(err).Error("could not shut down server")
		}
	}()

	if err = cd.Start(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
