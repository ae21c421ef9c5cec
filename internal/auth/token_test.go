package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	m, err := NewTokenManager("test-secret", 7*24*time.Hour)
	require.NoError(t, err)
	userID := uuid.New()

	token, err := m.Issue(userID, "x@example.com")
	require.NoError(t, err)

	got, err := m.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "x@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenManager_Rejects(t *testing.T) {
	m, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	userID := uuid.New()

	t.Run("expired", func(t *testing.T) {
		m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := m.Issue(userID, "x@example.com")
		m.now = time.Now
		require.NoError(t, err)

		_, err = m.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenManager("other-secret", time.Hour)
		require.NoError(t, err)
		token, err := other.Issue(userID, "x@example.com")
		require.NoError(t, err)

		_, err = m.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: userID.String()}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ValidateToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("bad user id claim", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			UserID:           "nope",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = m.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Regexp(t, `^[0-9]{6}$`, code)
	}
}

func TestCodeHasher(t *testing.T) {
	h := NewCodeHasher(4)

	hash, err := h.Hash("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.True(t, h.Matches(hash, "123456"))
	assert.False(t, h.Matches(hash, "654321"))
	assert.False(t, h.Matches("", "123456"))
}
