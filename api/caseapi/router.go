// Package caseapi provides the HTTP API for cases, updates, option registries
// and workbook import/export.
package caseapi

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"tideland.dev/go/slices"

	"github.com/casedesk/casedesk/storage/model"
	"github.com/casedesk/casedesk/workbook"
)

// Options controls optional features of the API registration.
type Options struct {
	// ImportEnabled controls whether workbook uploads are accepted.
	ImportEnabled bool
}

// Register mounts all API routes under the provided group.
func Register(r fiber.Router, backends model.Backends, opts *Options) {
	if opts == nil {
		opts = &Options{ImportEnabled: true}
	}
	registerCases(r, backends.Cases, backends.Updates, backends.Options)
	registerUpdates(r, backends.Updates)
	registerOptions(r, backends.Options)
	registerSummary(r, backends.Summary)
	registerEnums(r)
	registerVersion(r)
	registerWorkbook(
		r, workbook.NewExporter(backends), workbook.NewImporter(backends), backends.KV, opts.ImportEnabled,
	)
}

// caseFilters reads the case filters from the query string. Parameters that
// are not filterable are logged and ignored.
func caseFilters(c *fiber.Ctx) model.CaseFilters {
	queries := c.Queries()
	filters := make(model.CaseFilters, len(queries))
	keys := make([]string, 0, len(queries))
	for k, v := range queries {
		filters[k] = v
		keys = append(keys, k)
	}
	if ignored := slices.Subtract(keys, model.FilterableCaseFields); len(ignored) > 0 {
		log.WithField("params", ignored).Debug("ignoring unknown case filters")
	}
	return filters
}

// warnUnknownOptions logs list values of a case that are missing from the
// option registries. Such values are accepted.
func warnUnknownOptions(store model.OptionStore, cs model.Case) {
	if store == nil {
		return
	}
	for registry, values := range map[model.OptionRegistry][]string{
		model.OptionRegistryIssue: cs.IssueType,
		model.OptionRegistryAPI:   cs.APISupported,
	} {
		unknown, err := store.UnknownValues(registry, values)
		if err != nil {
			log.WithError(err).Debug("could not check option values")
			continue
		}
		if len(unknown) > 0 {
			log.WithFields(
				log.Fields{
					"case_id":  cs.CaseID,
					"registry": registry,
					"values":   unknown,
				},
			).Warn("case uses values that are not in the option registry")
		}
	}
}
