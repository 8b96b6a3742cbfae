package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/casedesk/casedesk/storage/model"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Lists and extends the api and issue option registries",
}

var optionsListCmd = &cobra.Command{
	Use:       "list <api|issue>",
	Short:     "Lists the values of an option registry",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(model.OptionRegistryAPI), string(model.OptionRegistryIssue)},
	PreRunE:   loadBackends,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := model.ParseOptionRegistry(args[0])
		if err != nil {
			return err
		}
		values, err := backends.Options.List(registry)
		if err != nil {
			return err
		}
		for _, v := range values {
			fmt.Println(v)
		}
		return nil
	},
}

var optionsAddCmd = &cobra.Command{
	Use:     "add <api|issue> <value>",
	Short:   "Adds a value to an option registry",
	Args:    cobra.ExactArgs(2),
	PreRunE: loadBackends,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := model.ParseOptionRegistry(args[0])
		if err != nil {
			return err
		}
		return backends.Options.Add(registry, args[1])
	},
}

func init() {
	optionsCmd.AddCommand(optionsListCmd, optionsAddCmd)
}
