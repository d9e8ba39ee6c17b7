package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	employerID := uuid.MustParse("0b7c5d1e-4a8f-4b7e-9a53-1f2d3c4b5a69")

	token, err := tm.Generate(employerID.String(), "hr@acme.example.com")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "hr@acme.example.com", claims.Email)
	assert.Equal(t, Issuer, claims.Issuer)

	id, err := claims.Employer()
	require.NoError(t, err)
	assert.Equal(t, employerID, id)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenManager("other-secret", time.Hour).Validate(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := NewTokenManager("test-secret", -time.Minute).Generate(employerID.String(), "e@example.com")
		require.NoError(t, err)
		_, err = tm.Validate(expired)
		assert.Error(t, err)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			EmployerID: employerID.String(),
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = tm.Validate(foreign)
		assert.Error(t, err)
	})

	t.Run("subject must match employer", func(t *testing.T) {
		c := &Claims{EmployerID: employerID.String()}
		c.Subject = uuid.NewString()
		_, err := c.Employer()
		assert.ErrorIs(t, err, ErrInvalidEmployer)

		_, err = (&Claims{EmployerID: "not-a-uuid"}).Employer()
		assert.ErrorIs(t, err, ErrInvalidEmployer)
	})
}
