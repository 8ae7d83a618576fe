package config

import (
	"slices"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_URL", "COOKIE_DOMAIN", "ALLOWED_ORIGINS", "JWT_ISSUER", "JWT_AUDIENCE"} {
		t.Setenv(k, "")
	}

	env := Load()

	if !env.IsDevelopment || env.Domain != "localhost" || env.CookieSecure {
		t.Errorf("Load() development settings = %+v", env)
	}
	if env.Port != "8080" {
		t.Errorf("Port = %q, want 8080", env.Port)
	}
	if env.JWTIssuer != "kanadeck" || env.JWTAudience != "kanadeck-api" {
		t.Errorf("JWT settings = %q, %q", env.JWTIssuer, env.JWTAudience)
	}
	if !slices.Equal(env.AllowedOrigins, []string{"http://localhost:3000"}) {
		t.Errorf("AllowedOrigins = %v", env.AllowedOrigins)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("COOKIE_DOMAIN", "kanadeck.app")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("JWT_SECRET_KEY", "s3cret")

	env := Load()

	if env.IsDevelopment || !env.CookieSecure || env.Domain != "kanadeck.app" {
		t.Errorf("Load() production settings = %+v", env)
	}
	if env.Port != "9000" || env.JWTSecret != "s3cret" {
		t.Errorf("Load() = %+v", env)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !slices.Equal(env.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", env.AllowedOrigins, want)
	}
	if Env.Port != "9000" {
		t.Error("Load() did not update Env")
	}
}
