package middleware

import (
	"errors"
	"io"
	"movieapi/errs"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, handler fiber.Handler) (int, string) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestErrorResponseMapsKinds(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return ErrorResponse(c, errs.NotFound("Movie not found"))
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.JSONEq(t, `{"detail":"Movie not found"}`, body)

	status, body = call(t, func(c *fiber.Ctx) error {
		return ErrorResponse(c, errors.New("connection reset"))
	})
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `{"detail":"Internal server error"}`, body)
}

func TestValidationErrorResponse(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return ValidationErrorResponse(c, map[string]string{"title": "title is required"})
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.JSONEq(t, `{"detail":"Validation failed!","errors":{"title":"title is required"}}`, body)
}

func TestErrorHandler(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return fiber.ErrMethodNotAllowed
	})
	assert.Equal(t, fiber.StatusMethodNotAllowed, status)
	assert.JSONEq(t, `{"detail":"Method Not Allowed"}`, body)

	status, body = call(t, func(c *fiber.Ctx) error {
		return errs.Forbidden("nope")
	})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.JSONEq(t, `{"detail":"nope"}`, body)
}
