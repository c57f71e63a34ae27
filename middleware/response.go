package middleware

import (
	"errors"
	"movieapi/errs"
	"movieapi/logging"

	"github.com/gofiber/fiber/v2"
)

// JsonResponse writes data as the bare response body.
func JsonResponse(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// ErrorResponse writes err as {"detail": ...} with the status of its kind.
// Errors without a kind are logged and answered with a generic 500.
func ErrorResponse(c *fiber.Ctx, err error) error {
	status, detail := errs.Status(err)
	if status == fiber.StatusInternalServerError {
		logging.Error().
			Err(err).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"detail": "Validation failed!",
		"errors": errors,
	})
}

// ErrorHandler is the fiber.Config error handler. It renders routing errors such as 404 and 405
// with their own status and everything else through ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"detail": fe.Message})
	}
	return ErrorResponse(c, err)
}
