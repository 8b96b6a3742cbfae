package caseapi

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/casedesk/casedesk/storage/model"
	"github.com/casedesk/casedesk/workbook"
)

const (
	exportFilename   = "casedesk-export.xlsx"
	templateFilename = "casedesk-template.xlsx"
)

func registerWorkbook(
	r fiber.Router, exporter *workbook.Exporter, importer *workbook.Importer, kv model.KeyValueStore,
	importEnabled bool,
) {
	g := r.Group("/workbook")

	g.Get(
		"/export", func(c *fiber.Ctx) error {
			filters := caseFilters(c)
			c.Attachment(exportFilename)
			c.Set(fiber.HeaderContentType, workbook.ContentType)
			if err := exporter.Export(c.Response().BodyWriter(), filters); err != nil {
				c.Response().ResetBody()
				return sendStoreError(c, err)
			}
			return nil
		},
	)

	g.Get(
		"/template", func(c *fiber.Ctx) error {
			c.Attachment(templateFilename)
			c.Set(fiber.HeaderContentType, workbook.ContentType)
			if err := workbook.Template(c.Response().BodyWriter()); err != nil {
				c.Response().ResetBody()
				return sendStoreError(c, err)
			}
			return nil
		},
	)

	g.Get(
		"/import/last", func(c *fiber.Ctx) error {
			report, err := model.LastImportReport(kv)
			if err != nil {
				return sendStoreError(c, err)
			}
			if report == nil {
				return notFound(c, "no import has run yet")
			}
			return c.JSON(report)
		},
	)

	if !importEnabled {
		return
	}
	g.Post(
		"/import", func(c *fiber.Ctx) error {
			fh, err := c.FormFile("file")
			if err != nil {
				return invalidRequest(c, "missing file")
			}
			if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
				return invalidRequest(c, "only .xlsx workbooks are supported")
			}
			f, err := fh.Open()
			if err != nil {
				return sendStoreError(c, err)
			}
			defer f.Close()
			report, err := importer.Import(c.UserContext(), f)
			if err != nil {
				if report.Aborted {
					return c.Status(fiber.StatusServiceUnavailable).JSON(report)
				}
				return sendStoreError(c, err)
			}
			return c.JSON(report)
		},
	)
}
