package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"healthapp/pkg/apperr"
	"healthapp/pkg/envelope"
	"healthapp/pkg/models"
	"healthapp/pkg/services"
	"healthapp/pkg/token"
)

type AuthHandler struct {
	accounts services.AccountService
	tokens   *token.Service
	log      *zap.Logger
}

func NewAuth(accounts services.AccountService, tokens *token.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens, log: log}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return envelope.Fail(c, apperr.Payload(400, "Invalid JSON body"))
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)

	if verr := validateSignup(req); verr != nil {
		return envelope.Fail(c, verr)
	}

	account, err := h.accounts.Signup(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return h.respondWithTokens(c, account, 201)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return envelope.Fail(c, apperr.Payload(400, "Invalid JSON body"))
	}
	if verr := validateLogin(req); verr != nil {
		return envelope.Fail(c, verr)
	}

	account, err := h.accounts.Authenticate(c.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return h.respondWithTokens(c, account, 200)
}

// Refresh mints a new access token. The refresh token is not rotated: the
// same one is echoed back and stays valid until its natural expiry.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return envelope.Fail(c, apperr.Payload(400, "Invalid JSON body"))
	}
	if req.RefreshToken == "" {
		return envelope.Fail(c, apperr.Validation(map[string]string{"refresh_token": "required"}))
	}

	accountID, err := h.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		return envelope.Fail(c, err)
	}
	access, err := h.tokens.IssueAccess(accountID)
	if err != nil {
		return h.fail(c, err)
	}
	return envelope.OK(c, 200, models.TokenPair{
		AccessToken:  access,
		RefreshToken: req.RefreshToken,
		TokenType:    "bearer",
	})
}

// Logout is a no-op: tokens are stateless, so the server cannot invalidate
// a still-valid one. Clients discard their copies.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// ForgotPassword answers identically whether or not the identifier matches
// an account, to prevent enumeration. Nothing is sent anywhere.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	_ = c.BodyParser(&req)
	return envelope.OK(c, 200, fiber.Map{
		"message": "If an account matches, password reset instructions have been sent",
	})
}

func (h *AuthHandler) respondWithTokens(c *fiber.Ctx, account models.Account, status int) error {
	access, err := h.tokens.IssueAccess(account.ID)
	if err != nil {
		return h.fail(c, err)
	}
	refresh, err := h.tokens.IssueRefresh(account.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return envelope.OK(c, status, models.AuthResponse{
		Account: account.Public(),
		Tokens: models.TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
			TokenType:    "bearer",
		},
	})
}

// fail logs errors outside the taxonomy before they collapse into a
// generic 500.
func (h *AuthHandler) fail(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return envelope.Fail(c, err)
}
