package fiber

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/okondo/bulletin/core"
)

// validationErrs are the request-contract failures whose text is surfaced
// to the client as the first violated field's message.
var validationErrs = []error{
	core.ErrEmailRequired,
	core.ErrEmailLength,
	core.ErrInvalidEmail,
	core.ErrPasswordRequired,
	core.ErrPasswordTooShort,
	core.ErrPasswordWeak,
	core.ErrCodeRequired,
	core.ErrInvalidCodeFormat,
	core.ErrTitleRequired,
	core.ErrTitleTooLong,
	core.ErrDescriptionRequired,
	core.ErrDescriptionTooLong,
}

func isValidationErr(err error) bool {
	for _, e := range validationErrs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func fail(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// failInternal hides the error detail behind a generic message. Auth
// routes use this; post routes echo the detail instead (see postError).
func failInternal(c fiber.Ctx) error {
	return fail(c, fiber.StatusInternalServerError, "Something went wrong. Please try again later.")
}
