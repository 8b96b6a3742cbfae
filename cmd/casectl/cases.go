package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/casedesk/casedesk/internal/version"
	"github.com/casedesk/casedesk/storage/model"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Short:   "Prints the number of cases per status",
	Args:    cobra.NoArgs,
	PreRunE: loadBackends,
	RunE: func(cmd *cobra.Command, args []string) error {
		counts, err := backends.Summary.Counts()
		if err != nil {
			return err
		}
		fmt.Printf("%-22s %d\n", "TOTAL", counts.Total)
		for _, status := range model.CaseStatuses {
			fmt.Printf("%-22s %d\n", status, counts.ByStatus[status])
		}
		if counts.Unbucketed > 0 {
			fmt.Printf("%-22s %d\n", "OTHER", counts.Unbucketed)
		}
		return nil
	},
}

var caseFilters map[string]string

var casesCmd = &cobra.Command{
	Use:     "cases",
	Short:   "Lists cases as JSON",
	Args:    cobra.NoArgs,
	PreRunE: loadBackends,
	RunE: func(cmd *cobra.Command, args []string) error {
		cases, err := backends.Cases.List(model.CaseFilters(caseFilters))
		if err != nil {
			return err
		}
		return printJSON(cases)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

func init() {
	casesCmd.Flags().StringToStringVarP(
		&caseFilters, "filter", "f", nil, "only list cases whose field contains the value, e.g. -f seller_name=acme",
	)
}
