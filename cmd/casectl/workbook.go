package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/casedesk/casedesk/storage/model"
	"github.com/casedesk/casedesk/workbook"
)

var (
	exportOutput   string
	templateOutput string
	exportFilters  map[string]string
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Exports cases and updates to a workbook",
	Args:    cobra.NoArgs,
	PreRunE: loadBackends,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		f, err := createFile(exportOutput)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		return workbook.NewExporter(backends).Export(f, model.CaseFilters(exportFilters))
	},
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Writes an empty workbook with the expected sheets and columns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		f, err := createFile(templateOutput)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		return workbook.Template(f)
	},
}

var importCmd = &cobra.Command{
	Use:     "import <file.xlsx>",
	Short:   "Imports cases and updates from a workbook",
	Long:    "Imports cases and updates from a workbook. Existing cases are skipped, never overwritten.",
	Args:    cobra.ExactArgs(1),
	PreRunE: loadBackends,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		report, err := workbook.NewImporter(backends).Import(ctx, f)
		if err != nil && !report.Aborted {
			return err
		}
		fmt.Printf(
			"Cases created: %d, skipped: %d\nUpdates created: %d, skipped: %d\nCells replaced by defaults: %d\n",
			report.CasesCreated, report.CasesSkipped, report.UpdatesCreated, report.UpdatesSkipped,
			len(report.Fallbacks),
		)
		return err
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "casedesk-export.xlsx", "the workbook to write")
	exportCmd.Flags().StringToStringVarP(
		&exportFilters, "filter", "f", nil, "only export cases whose field contains the value, e.g. -f case_status=WIP",
	)
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "casedesk-template.xlsx", "the workbook to write")
}
