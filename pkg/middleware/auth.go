package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"healthapp/pkg/apperr"
	"healthapp/pkg/envelope"
	"healthapp/pkg/token"
)

// Auth requires a valid bearer access token and stores the account id in
// request locals for handlers.
func Auth(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return envelope.Fail(c, apperr.Unauthorized())
		}
		accountID, err := tokens.VerifyAccess(auth[7:])
		if err != nil {
			return envelope.Fail(c, err)
		}
		c.Locals("account_id", accountID)
		return c.Next()
	}
}

// AccountID returns the authenticated account id set by Auth.
func AccountID(c *fiber.Ctx) string {
	id, _ := c.Locals("account_id").(string)
	return id
}
