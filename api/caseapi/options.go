package caseapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casedesk/casedesk/storage/model"
)

type addOptionRequest struct {
	Value string `json:"value"`
}

func registerOptions(r fiber.Router, store model.OptionStore) {
	g := r.Group("/options/:registry")

	registry := func(c *fiber.Ctx) (model.OptionRegistry, error) {
		return model.ParseOptionRegistry(c.Params("registry"))
	}

	g.Get(
		"/", func(c *fiber.Ctx) error {
			reg, err := registry(c)
			if err != nil {
				return notFound(c, err.Error())
			}
			values, err := store.List(reg)
			if err != nil {
				return sendStoreError(c, err)
			}
			return c.JSON(values)
		},
	)

	g.Post(
		"/", func(c *fiber.Ctx) error {
			reg, err := registry(c)
			if err != nil {
				return notFound(c, err.Error())
			}
			var req addOptionRequest
			if err = c.BodyParser(&req); err != nil {
				return invalidRequest(c, "invalid body")
			}
			if err = store.Add(reg, req.Value); err != nil {
				return sendStoreError(c, err)
			}
			values, err := store.List(reg)
			if err != nil {
				return sendStoreError(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(values)
		},
	)
}
