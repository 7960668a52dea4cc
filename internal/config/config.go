package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Secrets (pepper, database password) live here and
// are injected into the components that need them; nothing reads the
// environment after Load returns.
type Config struct {
	Env        string // application environment (e.g. "development", "production")
	Port       string // HTTP port to listen on
	DBUser     string // database username
	DBPass     string // database password (optional)
	DBHost     string // database host address
	DBPort     string // database port number
	DBName     string // database name
	Pepper     string // secret appended to passwords before hashing
	BcryptCost int    // bcrypt cost factor (low in dev/test, high in prod)

	// Outbound e-mail settings.  All optional; when EmailHost is empty the
	// welcome-mail consumer only logs the events it receives.
	EmailHost string
	EmailPort string
	EmailUser string
	EmailPass string
	EmailFrom string
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:        must("APP_ENV"),
		Port:       must("APP_PORT"),
		DBUser:     must("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"), // empty allowed
		DBHost:     must("DB_HOST"),
		DBPort:     must("DB_PORT"),
		DBName:     must("DB_NAME"),
		Pepper:     must("PEPPER"),
		BcryptCost: mustInt("BCRYPT_COST"),
		EmailHost:  os.Getenv("EMAIL_SMTP_HOST"),
		EmailPort:  os.Getenv("EMAIL_SMTP_PORT"),
		EmailUser:  os.Getenv("EMAIL_SMTP_USER"),
		EmailPass:  os.Getenv("EMAIL_SMTP_PASSWORD"),
		EmailFrom:  os.Getenv("EMAIL_FROM"),
	}
}

// Production reports whether the app runs with production hardening
// (secure cookies, TLS-only e-mail).
func (c Config) Production() bool {
	return c.Env == "production"
}

// must retrieves the value of a required environment variable.  If the
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
