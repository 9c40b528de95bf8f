package handlers

import (
	"errors"

	"rapidreads/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders errors returned by handlers and middleware. Details of
// internal failures are only exposed outside production.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			body := fiber.Map{"message": appErr.Message}
			if appErr.Kind == apperrors.KindInternal && !production && appErr.Err != nil {
				body["error"] = appErr.Err.Error()
			}
			return c.Status(appErr.StatusCode()).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		detail := "Something went wrong"
		if !production {
			detail = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
			"error":   detail,
		})
	}
}

// parseBody decodes the JSON body into out. An empty body leaves out untouched
// so the validator reports the missing fields.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, "Invalid request body", err)
	}
	return nil
}
