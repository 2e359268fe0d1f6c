package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgpulse-survey/internal/pkg/jwt"
)

const testSecret = "test-secret"

func TestGenerateAndVerify(t *testing.T) {
	t.Parallel()

	token, err := jwt.Generate(42, "user@example.com", "employee", testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := jwt.Verify(token, testSecret)
	require.NotNil(t, claims)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "employee", claims.Role)
}

func TestVerify_Failures(t *testing.T) {
	t.Parallel()

	token, err := jwt.Generate(1, "a@b.c", "admin", testSecret)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, jwt.Verify(token, "other-secret"))
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, jwt.Verify("not.a.token", testSecret))
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, jwt.Verify("", testSecret))
	})

	t.Run("tampered payload", func(t *testing.T) {
		t.Parallel()
		tampered := token[:len(token)-4] + "XXXX"
		assert.Nil(t, jwt.Verify(tampered, testSecret))
	})
}

func TestClaims_Expiry(t *testing.T) {
	t.Parallel()

	token, err := jwt.Generate(7, "x@y.z", "employee", testSecret)
	require.NoError(t, err)

	claims := jwt.Verify(token, testSecret)
	require.NotNil(t, claims)

	expected := time.Now().Add(jwt.TokenLifetime)
	assert.WithinDuration(t, expected, claims.ExpiresAt.Time, 5*time.Second)
}
