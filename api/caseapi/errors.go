package caseapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/casedesk/casedesk/storage/model"
)

// Error codes used in error responses
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeAlreadyExists  = "already_exists"
	ErrorCodeServerError    = "server_error"
)

// ErrorResponse is the body of all error responses
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func sendError(c *fiber.Ctx, status int, code, description string) error {
	return c.Status(status).JSON(
		ErrorResponse{
			Error:            code,
			ErrorDescription: description,
		},
	)
}

func invalidRequest(c *fiber.Ctx, description string) error {
	return sendError(c, fiber.StatusBadRequest, ErrorCodeInvalidRequest, description)
}

func notFound(c *fiber.Ctx, description string) error {
	return sendError(c, fiber.StatusNotFound, ErrorCodeNotFound, description)
}

// sendStoreError maps the model errors to their status codes; everything else
// is a server error.
func sendStoreError(c *fiber.Ctx, err error) error {
	var notFoundError model.NotFoundError
	if errors.As(err, &notFoundError) {
		return notFound(c, notFoundError.Error())
	}
	var alreadyExistsError model.AlreadyExistsError
	if errors.As(err, &alreadyExistsError) {
		return sendError(c, fiber.StatusConflict, ErrorCodeAlreadyExists, alreadyExistsError.Error())
	}
	var validationError model.ValidationError
	if errors.As(err, &validationError) {
		return invalidRequest(c, validationError.Error())
	}
	var schemaError model.SchemaError
	if errors.As(err, &schemaError) {
		return invalidRequest(c, schemaError.Error())
	}
	log.WithError(err).WithField("path", c.Path()).Error("request failed")
	return sendError(c, fiber.StatusInternalServerError, ErrorCodeServerError, err.Error())
}
