package utils

import (
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

func validatedClaims(r *http.Request) (*validator.ValidatedClaims, bool) {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

// GetAuth0ID returns the subject of the validated token on r.
func GetAuth0ID(r *http.Request) (string, bool) {
	claims, ok := validatedClaims(r)
	if !ok || claims.RegisteredClaims.Subject == "" {
		return "", false
	}
	return claims.RegisteredClaims.Subject, true
}

// GetCustomClaims returns the custom claims of the validated token on r.
func GetCustomClaims[T any](r *http.Request) (T, bool) {
	var zero T
	claims, ok := validatedClaims(r)
	if !ok {
		return zero, false
	}
	custom, ok := claims.CustomClaims.(T)
	return custom, ok
}
