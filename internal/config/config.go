package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings normalizes boolean toggles
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Strings for identifiers and secrets, ints
// for durations and costs, booleans for feature toggles.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	BaseURL        string // public base URL, used to build verification/reset links
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	ResetTTLMin    int    // password reset token time-to-live in minutes
	BcryptCost     int    // bcrypt cost for password hashing
	MockStore      bool   // serve from the in-memory mock store instead of MySQL
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
// When MOCK_STORE is enabled the DB_* variables are not required: the
// service runs entirely against the no-op mock store for offline work.
func Load() Config {
	mock := envBool("MOCK_STORE", false)
	cfg := Config{
		Env:            must("APP_ENV"),  // environment (dev/test/prod)
		Port:           must("APP_PORT"), // port to bind the HTTP server
		BaseURL:        getenvDefault("APP_BASE_URL", "http://localhost:8080"),
		JWTSecret:      must("JWT_SECRET"),                // secret used for signing JWTs
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
		ResetTTLMin:    envInt("RESET_TOKEN_TTL_MIN", 30), // TTL for password reset tokens
		BcryptCost:     mustInt("BCRYPT_COST"),            // bcrypt cost factor
		MockStore:      mock,
	}
	if !mock {
		cfg.DBUser = must("DB_USER")      // database user
		cfg.DBPass = os.Getenv("DB_PASS") // database password (empty allowed)
		cfg.DBHost = must("DB_HOST")      // database host
		cfg.DBPort = must("DB_PORT")      // database port
		cfg.DBName = must("DB_NAME")      // database name
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	v := strings.ToLower(os.Getenv(key))
	switch v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
