package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"user-org-backend/pkg/models"
)

var (
	// ErrTokenExpired means the signature checked out but the token is past
	// its expiration; the caller must log in again.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers every other verification failure: malformed
	// input, wrong signature, wrong algorithm. Never retryable.
	ErrTokenInvalid = errors.New("token invalid")
)

// JWTService issues and verifies signed, time-bound access tokens. The
// secret and expiry come from startup configuration and never change.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a token service.
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), expiry: expiry}
}

// IssueToken signs a token identifying the subject. Claims carry identity
// only.
func (j *JWTService) IssueToken(userID, email string) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies a token and returns its claims. Expired tokens
// yield ErrTokenExpired; any other failure yields ErrTokenInvalid.
func (j *JWTService) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
