package caseapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casedesk/casedesk/internal/version"
	"github.com/casedesk/casedesk/storage/model"
)

func registerSummary(r fiber.Router, store model.SummaryStore) {
	r.Get(
		"/summary", func(c *fiber.Ctx) error {
			counts, err := store.Counts()
			if err != nil {
				return sendStoreError(c, err)
			}
			return c.JSON(counts)
		},
	)
}

func registerEnums(r fiber.Router) {
	r.Get(
		"/enums", func(c *fiber.Ctx) error {
			return c.JSON(model.Enumerations())
		},
	)
}

func registerVersion(r fiber.Router) {
	r.Get(
		"/version", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"version": version.VERSION})
		},
	)
}
