package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", 1, 7)

	access, err := m.GenerateToken(42, "rex-admin", true)
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "rex-admin", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, TypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	_, err = m.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	refresh, err := m.GenerateRefreshToken(42, "rex-admin", true)
	require.NoError(t, err)
	_, err = m.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	rc, err := m.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.True(t, rc.ExpiresAt.Time.After(claims.ExpiresAt.Time))
}

func TestJWTManager_UniqueTokens(t *testing.T) {
	m := NewJWTManager("test-secret", 1, 7)
	a, err := m.GenerateToken(1, "u", false)
	require.NoError(t, err)
	b, err := m.GenerateToken(1, "u", false)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("test-secret", 1, 7)
	other := NewJWTManager("another-secret", 1, 7)

	signedByOther, err := other.GenerateToken(1, "u", false)
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, CustomClaims{
		UserID:    1,
		Username:  "u",
		TokenType: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "签名密钥不一致", token: signedByOther},
		{name: "已过期", token: expired},
		{name: "格式错误", token: "not.a.jwt"},
		{name: "空字符串", token: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.VerifyToken(tt.token)
			assert.Error(t, err)
		})
	}
}
