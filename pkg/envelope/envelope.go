// Package envelope renders the uniform success/error wrapper around every
// API response.
package envelope

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"healthapp/pkg/apperr"
)

type Response struct {
	Success bool          `json:"success"`
	Data    interface{}   `json:"data,omitempty"`
	Error   *apperr.Error `json:"error,omitempty"`
}

// OK writes a success envelope with the given status.
func OK(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Response{Success: true, Data: data})
}

// Fail writes an error envelope. Errors outside the apperr taxonomy render
// as a generic internal error so store failures never leak to clients.
func Fail(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Internal()
	}
	return c.Status(ae.Status).JSON(Response{Success: false, Error: ae})
}
