package authValidator

import (
	"strings"

	"seb/middleware"

	"github.com/gofiber/fiber/v2"
)

func ExchangeCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code string `json:"code"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Code
		if strings.TrimSpace(reqData.Code) == "" {
			errors["code"] = "Code is required!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExchange", reqData)
		return c.Next()
	}
}
