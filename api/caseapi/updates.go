package caseapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casedesk/casedesk/storage/model"
)

func updateID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("updateID")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func registerUpdates(r fiber.Router, store model.UpdateStore) {
	g := r.Group("/updates")

	g.Get(
		"/", func(c *fiber.Ctx) error {
			var caseID *string
			if v := c.Query("case_id"); v != "" {
				caseID = &v
			}
			items, err := store.List(caseID)
			if err != nil {
				return sendStoreError(c, err)
			}
			return c.JSON(items)
		},
	)

	g.Post(
		"/", func(c *fiber.Ctx) error {
			var req model.Update
			if err := c.BodyParser(&req); err != nil {
				return invalidRequest(c, "invalid body")
			}
			if err := req.Validate(); err != nil {
				return sendStoreError(c, err)
			}
			id, err := store.Create(req)
			if err != nil {
				return sendStoreError(c, err)
			}
			item, err := store.Get(id)
			if err != nil {
				return sendStoreError(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(item)
		},
	)

	g.Get(
		"/:updateID", func(c *fiber.Ctx) error {
			id, ok := updateID(c)
			if !ok {
				return invalidRequest(c, "invalid update id")
			}
			item, err := store.Get(id)
			if err != nil {
				return sendStoreError(c, err)
			}
			if item == nil {
				return notFound(c, "update not found")
			}
			return c.JSON(item)
		},
	)

	g.Put(
		"/:updateID", func(c *fiber.Ctx) error {
			id, ok := updateID(c)
			if !ok {
				return invalidRequest(c, "invalid update id")
			}
			var req model.Update
			if err := c.BodyParser(&req); err != nil {
				return invalidRequest(c, "invalid body")
			}
			if err := req.Validate(); err != nil {
				return sendStoreError(c, err)
			}
			if err := store.Update(id, req); err != nil {
				return sendStoreError(c, err)
			}
			item, err := store.Get(id)
			if err != nil {
				return sendStoreError(c, err)
			}
			if item == nil {
				// tolerated missing update
				return c.SendStatus(fiber.StatusNoContent)
			}
			return c.JSON(item)
		},
	)

	g.Delete(
		"/:updateID", func(c *fiber.Ctx) error {
			id, ok := updateID(c)
			if !ok {
				return invalidRequest(c, "invalid update id")
			}
			if err := store.Delete(id); err != nil {
				return sendStoreError(c, err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		},
	)
}
