package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth() *AuthService {
	return NewAuthService("admin", "s3cret", "test-secret", time.Hour)
}

func TestLogin(t *testing.T) {
	auth := newTestAuth()

	_, err := auth.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := auth.Login("admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	claims, err := auth.ValidateAdminToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.AdminID, claims.AdminID)
}

func TestSessionTokens(t *testing.T) {
	auth := newTestAuth()

	token, err := auth.GenerateSessionToken("session-1")
	require.NoError(t, err)

	claims, err := auth.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)

	// a session token never grants admin access
	_, err = auth.ValidateAdminToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensRejectedWithOtherSecret(t *testing.T) {
	token, err := newTestAuth().GenerateSessionToken("session-1")
	require.NoError(t, err)

	other := NewAuthService("admin", "s3cret", "different", time.Hour)
	_, err = other.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = other.ValidateSessionToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredSessionToken(t *testing.T) {
	auth := NewAuthService("admin", "s3cret", "test-secret", -time.Minute)
	token, err := auth.GenerateSessionToken("session-1")
	require.NoError(t, err)

	_, err = auth.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChatTokensAreScopedToChat(t *testing.T) {
	auth := newTestAuth()

	token, err := auth.GenerateChatToken("chat-1")
	require.NoError(t, err)

	claims, err := auth.ValidateChatToken(token)
	require.NoError(t, err)
	assert.Equal(t, "chat-1", claims.ChatID)

	_, err = auth.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = auth.ValidateAdminToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	sessionToken, err := auth.GenerateSessionToken("session-1")
	require.NoError(t, err)
	_, err = auth.ValidateChatToken(sessionToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
