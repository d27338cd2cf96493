package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"healthapp/pkg/apperr"
	"healthapp/pkg/envelope"
	"healthapp/pkg/riskscore"
)

type RiskHandler struct {
	log *zap.Logger
}

func NewRisk(log *zap.Logger) *RiskHandler {
	return &RiskHandler{log: log}
}

// Predict scores a heart-risk profile. Pure computation; nothing is stored.
func (h *RiskHandler) Predict(c *fiber.Ctx) error {
	var in riskscore.Input
	if err := c.BodyParser(&in); err != nil {
		return envelope.Fail(c, apperr.Payload(400, "Invalid JSON body"))
	}
	if in.Age <= 0 || in.Age > 120 {
		return envelope.Fail(c, apperr.Validation(map[string]string{"Age": "must be between 1 and 120"}))
	}
	return envelope.OK(c, 200, riskscore.Assess(in))
}
