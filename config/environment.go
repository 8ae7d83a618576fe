package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Environment struct {
	IsDevelopment bool
	Domain        string
	CookieSecure  bool

	Port           string
	DatabaseURL    string
	SQLitePath     string
	AllowedOrigins []string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
}

var Env Environment

// Load reads the environment, applying development defaults for anything unset.
func Load() Environment {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("SQLITE_PATH", "kanadeck.db")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("JWT_ISSUER", "kanadeck")
	v.SetDefault("JWT_AUDIENCE", "kanadeck-api")

	// If no domain is set, we're in development
	domain := v.GetString("COOKIE_DOMAIN")
	isDev := domain == ""
	if isDev {
		domain = "localhost"
	}

	var origins []string
	for _, o := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	Env = Environment{
		IsDevelopment:  isDev,
		Domain:         domain,
		CookieSecure:   !isDev,
		Port:           v.GetString("PORT"),
		DatabaseURL:    v.GetString("DB_URL"),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		AllowedOrigins: origins,
		JWTSecret:      v.GetString("JWT_SECRET_KEY"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		JWTAudience:    v.GetString("JWT_AUDIENCE"),
	}
	return Env
}
