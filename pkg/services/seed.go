package services

import (
	"context"
	"errors"

	"healthapp/pkg/apperr"
	"healthapp/pkg/models"
)

// SeedDemoAccount creates the demo login used by local frontends. An
// already-existing demo account is not an error.
func SeedDemoAccount(ctx context.Context, accounts AccountService) error {
	_, err := accounts.Signup(ctx, models.SignupRequest{
		Username: "demo",
		Name:     "Demo User",
		Age:      30,
		Gender:   models.GenderUnspecified,
		Phone:    "+11234567890",
		Password: "Demo1234",
	})
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Code == apperr.CodeConflict {
		return nil
	}
	return err
}
