package token

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Lifetimes of the two cookie tokens. The access token is deliberately
// short; the refresh token is also persisted server-side for revocation.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// AccessClaims carries the authenticated identity on every request.
type AccessClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the user identity; role is re-read from the
// database when a new access token is minted.
type RefreshClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

func accessSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-access-secret-change-in-production"
	}
	return []byte(secret)
}

func refreshSecret() []byte {
	secret := os.Getenv("JWT_REFRESH_SECRET")
	if secret == "" {
		secret = "dev-refresh-secret-change-in-production"
	}
	return []byte(secret)
}

// GenerateAccessToken creates the short-lived token identifying the user
// and role on gated routes.
func GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	claims := &AccessClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "go-inventory-pos",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(accessSecret())
}

// GenerateRefreshToken creates the long-lived token used to mint new
// access tokens.
func GenerateRefreshToken(userID uuid.UUID) (string, error) {
	claims := &RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "go-inventory-pos",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(refreshSecret())
}

// ValidateAccessToken parses and validates an access token.
func ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return accessSecret(), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims, ok := parsed.Claims.(*AccessClaims); ok && parsed.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// ValidateRefreshToken parses and validates a refresh token.
func ValidateRefreshToken(tokenString string) (*RefreshClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return refreshSecret(), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims, ok := parsed.Claims.(*RefreshClaims); ok && parsed.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
