package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/andrewpaige1/kanadeck-api/config"
)

// AuthCookieName is read when a request carries no Authorization header.
const AuthCookieName = "auth_token"

// CustomClaims holds the non-registered claims of our tokens.
type CustomClaims struct {
	Nickname string `json:"nickname"`
}

func (c *CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// EnsureValidToken validates HS256 bearer tokens issued for this API. Requests
// without a token pass through untouched; routes that need a user are wrapped
// in SyncUserMiddleware, which rejects them.
func EnsureValidToken(env config.Environment) (func(http.Handler) http.Handler, error) {
	secret := []byte(env.JWTSecret)
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return secret, nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		env.JWTIssuer,
		[]string{env.JWTAudience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("EnsureValidToken: encountered error while validating JWT: %v", err)
		http.Error(w, "Failed to validate JWT", http.StatusUnauthorized)
	}

	m := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
		jwtmiddleware.WithCredentialsOptional(true),
		jwtmiddleware.WithTokenExtractor(jwtmiddleware.MultiTokenExtractor(
			jwtmiddleware.AuthHeaderTokenExtractor,
			jwtmiddleware.CookieTokenExtractor(AuthCookieName),
		)),
	)

	return func(next http.Handler) http.Handler {
		return m.CheckJWT(next)
	}, nil
}
