// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Secrets and identifiers are strings; the bcrypt
// cost is an int because that is how the hashing call consumes it.
type Config struct {
	Env         string   // application environment (e.g. "dev", "prod")
	Port        string   // HTTP port to listen on
	DataDir     string   // directory holding users.json and orders.json
	JWTSecret   string   // secret used to sign JWTs (shared by both roles)
	AdminEmail  string   // fixed admin account email
	AdminPass   string   // fixed admin account password, compared directly
	BcryptCost  int      // bcrypt cost for password hashing
	CORSOrigins []string // allowed CORS origins; empty means allow all
}

// Load reads configuration from environment variables. None of the values
// are strictly required to boot: every one has a development default
// matching the original deployment, so a bare `go run ./cmd/server` works.
// Insecure defaults are logged loudly instead of being fatal.
func Load() Config {
	cfg := Config{
		Env:        envStr("APP_ENV", "dev"),
		Port:       envStr("APP_PORT", "3000"),
		DataDir:    envStr("DATA_DIR", "data"),
		JWTSecret:  envStr("JWT_SECRET", "change-me"),
		AdminEmail: envStr("ADMIN_EMAIL", "admin@example.com"),
		AdminPass:  envStr("ADMIN_PASS", "admin123"),
		BcryptCost: envInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
	if cfg.JWTSecret == "change-me" {
		log.Printf("config: JWT_SECRET is unset, using the insecure default")
	}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}
