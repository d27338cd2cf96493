package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"healthapp/pkg/apperr"
	"healthapp/pkg/envelope"
	"healthapp/pkg/middleware"
	"healthapp/pkg/models"
	"healthapp/pkg/services"
)

// UsersHandler serves the authenticated account's own profile. The account
// id always comes from the verified token, never from the request, so a
// caller can only ever read or mutate itself.
type UsersHandler struct {
	accounts services.AccountService
	log      *zap.Logger
}

func NewUsers(accounts services.AccountService, log *zap.Logger) *UsersHandler {
	return &UsersHandler{accounts: accounts, log: log}
}

func (h *UsersHandler) Me(c *fiber.Ctx) error {
	pub, err := h.accounts.GetPublic(c.Context(), middleware.AccountID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return envelope.OK(c, 200, pub)
}

func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	var patch models.AccountPatch
	if err := c.BodyParser(&patch); err != nil {
		return envelope.Fail(c, apperr.Payload(400, "Invalid JSON body"))
	}
	if verr := validatePatch(patch); verr != nil {
		return envelope.Fail(c, verr)
	}

	account, err := h.accounts.UpdateProfile(c.Context(), middleware.AccountID(c), patch)
	if err != nil {
		return h.fail(c, err)
	}
	return envelope.OK(c, 200, account.Public())
}

// UploadPhoto takes the raw image bytes as the request body with their
// declared Content-Type.
func (h *UsersHandler) UploadPhoto(c *fiber.Ctx) error {
	contentType := c.Get(fiber.HeaderContentType)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	account, err := h.accounts.ReplacePhoto(c.Context(), middleware.AccountID(c), c.Body(), contentType)
	if err != nil {
		return h.fail(c, err)
	}
	return envelope.OK(c, 200, account.Public())
}

func (h *UsersHandler) fail(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return envelope.Fail(c, err)
}
