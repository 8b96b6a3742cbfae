package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/casedesk/casedesk/cmd/casedesk/config"
	"github.com/casedesk/casedesk/storage/model"
)

var rootCmd = &cobra.Command{
	Use:   "casectl",
	Short: "casectl manages the cases of a casedesk instance",
	Long: "casectl manages the cases of a casedesk instance. It works directly on the configured database, " +
		"so it can be used while the server is stopped.",
	SilenceUsage: true,
}

var configFile string
var backends model.Backends

func loadBackends(_ *cobra.Command, _ []string) error {
	config.Load(configFile)
	log.SetLevel(log.WarnLevel)
	if level, err := log.ParseLevel(config.Get().Logging.Internal.Level); err == nil && level > log.WarnLevel {
		log.SetLevel(level)
	}
	var err error
	backends, err = config.LoadStorageBackends(config.Get().Storage)
	return err
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func createFile(path string) (*os.File, error) {
	if path == "" {
		return nil, errors.New("no output file given")
	}
	f, err := os.Create(path)
	return f, errors.WithStack(err)
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "the config file to use")
	rootCmd.AddCommand(
		exportCmd,
		templateCmd,
		importCmd,
		summaryCmd,
		casesCmd,
		optionsCmd,
		versionCmd,
	)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
