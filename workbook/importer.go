package workbook

import (
	"context"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/casedesk/casedesk/storage/model"
)

// Importer loads workbooks into the stores. Existing cases are never
// overwritten.
type Importer struct {
	Cases   model.CaseStore
	Updates model.UpdateStore
	// Options is optional; if set, values missing from the option registries
	// are logged
	Options model.OptionStore
	// KV is optional; if set, the report of every import is stored
	KV model.KeyValueStore
}

// NewImporter returns an Importer working on the passed backends
func NewImporter(backends model.Backends) *Importer {
	return &Importer{
		Cases:   backends.Cases,
		Updates: backends.Updates,
		Options: backends.Options,
		KV:      backends.KV,
	}
}

// Import parses the workbook and writes its rows. The whole workbook is parsed
// before anything is written, so a model.SchemaError or model.ValidationError
// leaves the stores untouched. Afterwards every row is written on its own;
// rows that cannot be written are skipped and counted.
//
// If ctx is cancelled, Import stops between rows and returns the report so
// far together with the context's error.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (model.ImportReport, error) {
	report := model.ImportReport{StartedAt: now().UTC()}
	parsed, err := Parse(r)
	if err != nil {
		return report, err
	}
	report.Fallbacks = parsed.Fallbacks
	for _, fb := range parsed.Fallbacks {
		log.WithFields(
			log.Fields{
				"sheet":    fb.Sheet,
				"row":      fb.Row,
				"column":   fb.Column,
				"value":    fb.Value,
				"fallback": fb.Fallback,
			},
		).Warn("import: could not convert cell, using default")
	}

	if err = imp.importCases(ctx, parsed.Cases, &report); err == nil {
		err = imp.importUpdates(ctx, parsed.Updates, &report)
	}
	if err != nil {
		report.Aborted = true
	}
	report.FinishedAt = now().UTC()
	log.WithFields(
		log.Fields{
			"cases_created":   report.CasesCreated,
			"cases_skipped":   report.CasesSkipped,
			"updates_created": report.UpdatesCreated,
			"updates_skipped": report.UpdatesSkipped,
			"fallbacks":       len(report.Fallbacks),
			"aborted":         report.Aborted,
		},
	).Info("import: finished")
	imp.saveReport(report)
	return report, err
}

func (imp *Importer) importCases(ctx context.Context, cases []ParsedCase, report *model.ImportReport) error {
	for _, pc := range cases {
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}
		fields := log.Fields{
			"row":     pc.Row,
			"case_id": pc.Case.CaseID,
		}
		if err := imp.Cases.Create(pc.Case); err != nil {
			report.CasesSkipped++
			var exists model.AlreadyExistsError
			if errors.As(err, &exists) {
				log.WithFields(fields).Debug("import: case exists, skipping")
			} else {
				log.WithError(err).WithFields(fields).Warn("import: could not create case, skipping")
			}
			continue
		}
		report.CasesCreated++
		imp.logUnknownOptions(pc)
	}
	return nil
}

func (imp *Importer) importUpdates(ctx context.Context, updates []ParsedUpdate, report *model.ImportReport) error {
	for _, pu := range updates {
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}
		fields := log.Fields{
			"row":     pu.Row,
			"case_id": pu.Update.CaseID,
		}
		if pu.Update.CaseID == "" {
			report.UpdatesSkipped++
			log.WithFields(fields).Debug("import: update without case id, skipping")
			continue
		}
		if _, err := imp.Updates.Create(pu.Update); err != nil {
			report.UpdatesSkipped++
			var notFound model.NotFoundError
			if errors.As(err, &notFound) {
				log.WithFields(fields).Debug("import: update for unknown case, skipping")
			} else {
				log.WithError(err).WithFields(fields).Warn("import: could not create update, skipping")
			}
			continue
		}
		report.UpdatesCreated++
	}
	return nil
}

func (imp *Importer) logUnknownOptions(pc ParsedCase) {
	if imp.Options == nil {
		return
	}
	for registry, values := range map[model.OptionRegistry][]string{
		model.OptionRegistryIssue: pc.Case.IssueType,
		model.OptionRegistryAPI:   pc.Case.APISupported,
	} {
		unknown, err := imp.Options.UnknownValues(registry, values)
		if err != nil {
			log.WithError(err).Debug("import: could not check option values")
			continue
		}
		if len(unknown) > 0 {
			log.WithFields(
				log.Fields{
					"row":      pc.Row,
					"case_id":  pc.Case.CaseID,
					"registry": registry,
					"values":   unknown,
				},
			).Info("import: case uses values that are not in the option registry")
		}
	}
}

func (imp *Importer) saveReport(report model.ImportReport) {
	if imp.KV == nil {
		return
	}
	if err := model.SaveImportReport(imp.KV, report); err != nil {
		log.WithError(err).Error("import: could not store report")
	}
}
