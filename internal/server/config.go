package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the server's environment-derived configuration.
type Config struct {
	HTTPAddr             string
	DatabaseURL          string
	JWTSecret            string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// ReauthWindow is how recently a token must have been issued for
	// destructive account operations. Older tokens get a 401 with the
	// reauth marker instead of a generic failure.
	ReauthWindow time.Duration
}

// LoadConfig reads configuration from the environment, honoring a
// local .env file when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("FLICK_HTTP_ADDR", ":8080"),
		DatabaseURL:          strings.TrimSpace(os.Getenv("FLICK_DATABASE_URL")),
		JWTSecret:            strings.TrimSpace(os.Getenv("FLICK_JWT_SECRET")),
		CORSAllowCredentials: getenv("FLICK_CORS_ALLOW_CREDENTIALS", "false") == "true",
		ReauthWindow:         30 * time.Minute,
	}

	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("missing env: FLICK_DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("missing env: FLICK_JWT_SECRET")
	}

	if w := strings.TrimSpace(os.Getenv("FLICK_REAUTH_WINDOW")); w != "" {
		d, err := time.ParseDuration(w)
		if err != nil {
			return cfg, fmt.Errorf("invalid FLICK_REAUTH_WINDOW: %w", err)
		}
		cfg.ReauthWindow = d
	}

	for _, o := range strings.Split(getenv("FLICK_CORS_ALLOWED_ORIGINS", ""), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
