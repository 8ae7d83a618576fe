package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andrewpaige1/kanadeck-api/config"
)

// Claims is the token payload understood by middleware.EnsureValidToken.
type Claims struct {
	Nickname string `json:"nickname,omitempty"`
	jwt.RegisteredClaims
}

// CreateToken signs an HS256 token for subject, valid for ttl.
func CreateToken(env config.Environment, subject, nickname string, ttl time.Duration) (string, error) {
	if env.JWTSecret == "" {
		return "", errors.New("auth.go: JWT_SECRET_KEY not set")
	}
	if subject == "" {
		return "", errors.New("auth.go: subject is required")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Nickname: nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    env.JWTIssuer,
			Audience:  jwt.ClaimStrings{env.JWTAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString([]byte(env.JWTSecret))
}
