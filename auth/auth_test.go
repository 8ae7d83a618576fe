package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andrewpaige1/kanadeck-api/config"
)

func TestCreateToken(t *testing.T) {
	env := config.Environment{JWTSecret: "secret", JWTIssuer: "kanadeck", JWTAudience: "kanadeck-api"}

	tokenString, err := CreateToken(env, "auth0|42", "tester", time.Hour)
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithIssuer("kanadeck"), jwt.WithAudience("kanadeck-api"), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("ParseWithClaims() error = %v", err)
	}
	if claims.Subject != "auth0|42" || claims.Nickname != "tester" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestCreateTokenRequiresSecretAndSubject(t *testing.T) {
	tests := []struct {
		name    string
		env     config.Environment
		subject string
	}{
		{"missing secret", config.Environment{}, "auth0|42"},
		{"missing subject", config.Environment{JWTSecret: "secret"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CreateToken(tt.env, tt.subject, "", time.Hour); err == nil {
				t.Error("CreateToken() error = nil, want error")
			}
		})
	}
}
