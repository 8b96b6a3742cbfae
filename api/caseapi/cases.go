package caseapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casedesk/casedesk/storage/model"
)

func registerCases(r fiber.Router, store model.CaseStore, updates model.UpdateStore, options model.OptionStore) {
	g := r.Group("/cases")

	g.Get(
		"/", func(c *fiber.Ctx) error {
			items, err := store.List(caseFilters(c))
			if err != nil {
				return sendStoreError(c, err)
			}
			return c.JSON(items)
		},
	)

	g.Post(
		"/", func(c *fiber.Ctx) error {
			var req model.Case
			if err := c.BodyParser(&req); err != nil {
				return invalidRequest(c, "invalid body")
			}
			if err := req.Validate(); err != nil {
				return sendStoreError(c, err)
			}
			warnUnknownOptions(options, req)
			if err := store.Create(req); err != nil {
				return sendStoreError(c, err)
			}
			item, err := store.Get(req.CaseID)
			if err != nil {
				return sendStoreError(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(item)
		},
	)

	g.Get(
		"/:caseID", func(c *fiber.Ctx) error {
			item, err := store.Get(c.Params("caseID"))
			if err != nil {
				return sendStoreError(c, err)
			}
			if item == nil {
				return notFound(c, "case not found")
			}
			return c.JSON(item)
		},
	)

	g.Put(
		"/:caseID", func(c *fiber.Ctx) error {
			var req model.Case
			if err := c.BodyParser(&req); err != nil {
				return invalidRequest(c, "invalid body")
			}
			caseID := c.Params("caseID")
			if req.CaseID != "" && req.CaseID != caseID {
				return invalidRequest(c, "case_id cannot be changed")
			}
			req.CaseID = caseID
			if err := req.Validate(); err != nil {
				return sendStoreError(c, err)
			}
			warnUnknownOptions(options, req)
			if err := store.Update(caseID, req); err != nil {
				return sendStoreError(c, err)
			}
			item, err := store.Get(caseID)
			if err != nil {
				return sendStoreError(c, err)
			}
			if item == nil {
				// tolerated missing case
				return c.SendStatus(fiber.StatusNoContent)
			}
			return c.JSON(item)
		},
	)

	g.Delete(
		"/:caseID", func(c *fiber.Ctx) error {
			if err := store.Delete(c.Params("caseID")); err != nil {
				return sendStoreError(c, err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		},
	)

	g.Get(
		"/:caseID/updates", func(c *fiber.Ctx) error {
			caseID := c.Params("caseID")
			items, err := updates.List(&caseID)
			if err != nil {
				return sendStoreError(c, err)
			}
			return c.JSON(items)
		},
	)
}
