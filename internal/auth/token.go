// internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is stamped on every employer token and required on validation.
const Issuer = "jobdesk"

var ErrInvalidEmployer = errors.New("token does not name an employer")

// TokenManager signs and validates employer access tokens.
type TokenManager struct {
	secret       []byte
	expiryPeriod time.Duration
	parser       *jwt.Parser
}

func NewTokenManager(secret string, expiryPeriod time.Duration) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		expiryPeriod: expiryPeriod,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(Issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// Claims carry the employer a token was issued to. The employer id is
// duplicated into the registered subject.
type Claims struct {
	EmployerID string `json:"employer_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// Employer returns the employer id of the claims.
func (c *Claims) Employer() (uuid.UUID, error) {
	id, err := uuid.Parse(c.EmployerID)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidEmployer
	}
	if c.Subject != "" && c.Subject != c.EmployerID {
		return uuid.Nil, ErrInvalidEmployer
	}
	return id, nil
}

// Generate issues a token for an employer. Accounts live elsewhere; the
// `jobdesk token` command uses this for operators and local testing.
func (tm *TokenManager) Generate(employerID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		EmployerID: employerID,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   employerID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiryPeriod)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, issuer and expiry and returns the claims.
func (tm *TokenManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, err := tm.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}
