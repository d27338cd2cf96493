package token

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthapp/pkg/apperr"
)

func testService(now *time.Time) *Service {
	return NewService(
		[]byte("access-secret-0123456789abcdef"),
		[]byte("refresh-secret-0123456789abcdef"),
		15*time.Minute,
		7*24*time.Hour,
	).WithClock(func() time.Time { return *now })
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	now := time.Now()
	svc := testService(&now)

	access, err := svc.IssueAccess("acc-123")
	require.NoError(t, err)
	refresh, err := svc.IssueRefresh("acc-123")
	require.NoError(t, err)

	sub, err := svc.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "acc-123", sub)

	sub, err = svc.VerifyRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, "acc-123", sub)
}

func TestVerify_CrossSecretRejected(t *testing.T) {
	now := time.Now()
	svc := testService(&now)

	access, err := svc.IssueAccess("acc-123")
	require.NoError(t, err)
	refresh, err := svc.IssueRefresh("acc-123")
	require.NoError(t, err)

	_, err = svc.VerifyRefresh(access)
	assert.Error(t, err, "access token must not verify as refresh")

	_, err = svc.VerifyAccess(refresh)
	assert.Error(t, err, "refresh token must not verify as access")
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	issued := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	svc := testService(&now)

	access, err := svc.IssueAccess("acc-123")
	require.NoError(t, err)

	now = issued.Add(15*time.Minute - time.Second)
	_, err = svc.VerifyAccess(access)
	assert.NoError(t, err, "one second before expiry must verify")

	now = issued.Add(15*time.Minute + time.Second)
	_, err = svc.VerifyAccess(access)
	assert.Error(t, err, "one second after expiry must fail")
}

func TestVerify_UniformUnauthorized(t *testing.T) {
	issued := time.Now()
	now := issued
	svc := testService(&now)

	expired, err := svc.IssueAccess("acc-123")
	require.NoError(t, err)
	now = issued.Add(time.Hour)

	cases := map[string]string{
		"malformed": "not.a.token",
		"empty":     "",
		"expired":   expired,
	}

	var messages []string
	for name, tok := range cases {
		_, err := svc.VerifyAccess(tok)
		require.Error(t, err, name)

		var ae *apperr.Error
		require.True(t, errors.As(err, &ae), name)
		assert.Equal(t, apperr.CodeUnauthorized, ae.Code, name)
		messages = append(messages, ae.Message)
	}
	// No failure mode leaks a distinguishing message.
	for _, m := range messages {
		assert.Equal(t, messages[0], m)
	}
}
