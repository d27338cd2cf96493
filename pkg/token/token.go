// Package token issues and verifies the signed access/refresh token pair.
//
// Tokens are stateless: validity is fully determined by signature and
// expiry, so there is no server-side session table and no way to revoke a
// token before its natural expiry.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"healthapp/pkg/apperr"
)

// Service signs and verifies bearer tokens. Access and refresh tokens use
// distinct secrets so compromise of one kind cannot forge the other.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewService(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// IssueAccess creates a short-lived access token for the account.
func (s *Service) IssueAccess(accountID string) (string, error) {
	return s.issue(accountID, s.accessSecret, s.accessTTL)
}

// IssueRefresh creates a long-lived refresh token for the account.
func (s *Service) IssueRefresh(accountID string) (string, error) {
	return s.issue(accountID, s.refreshSecret, s.refreshTTL)
}

func (s *Service) issue(sub string, secret []byte, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyAccess returns the account id bound to a valid access token.
func (s *Service) VerifyAccess(tokenStr string) (string, error) {
	return s.verify(tokenStr, s.accessSecret)
}

// VerifyRefresh returns the account id bound to a valid refresh token.
func (s *Service) VerifyRefresh(tokenStr string) (string, error) {
	return s.verify(tokenStr, s.refreshSecret)
}

// verify maps every failure mode (malformed, wrong secret, expired) to the
// same unauthorized error so callers cannot distinguish the cause.
func (s *Service) verify(tokenStr string, secret []byte) (string, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		return "", apperr.Unauthorized()
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperr.Unauthorized()
	}
	return claims.Subject, nil
}
