package config // package config loads application configuration from environment variables

import (
    "log"     // log reports configuration errors and halts execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time parses duration values
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable; strings for identifiers and
// secrets, ints for durations and costs.
type Config struct {
    Env              string        // application environment (e.g. "dev", "prod")
    Port             string        // HTTP port to listen on
    DBUser           string        // database username
    DBPass           string        // database password (optional)
    DBHost           string        // database host address
    DBPort           string        // database port number
    DBName           string        // database name
    JWTSecret        string        // secret used to sign JWTs
    AccessTTLMin     int           // access token time-to-live in minutes
    RefreshTTLDays   int           // refresh token time-to-live in days
    BcryptCost       int           // bcrypt cost for password hashing
    WizardSessionTTL time.Duration // how long an abandoned wizard session survives
    GatewayBaseURL   string        // payment gateway API base URL
    GatewayKeyID     string        // payment gateway key id
    GatewaySecret    string        // payment gateway signing secret
}

// Load reads configuration from environment variables.  Required
// variables are enforced by must() and missing values exit with a
// fatal log message.  Gateway settings are optional so the service
// can run without payments in development.
func Load() Config {
    return Config{
        Env:              must("APP_ENV"),
        Port:             must("APP_PORT"),
        DBUser:           must("DB_USER"),
        DBPass:           os.Getenv("DB_PASS"), // empty allowed
        DBHost:           must("DB_HOST"),
        DBPort:           must("DB_PORT"),
        DBName:           must("DB_NAME"),
        JWTSecret:        must("JWT_SECRET"),
        AccessTTLMin:     mustInt("ACCESS_TOKEN_TTL_MIN"),
        RefreshTTLDays:   mustInt("REFRESH_TOKEN_TTL_DAYS"),
        BcryptCost:       mustInt("BCRYPT_COST"),
        WizardSessionTTL: durOr("WIZARD_SESSION_TTL", 72*time.Hour),
        GatewayBaseURL:   os.Getenv("GATEWAY_BASE_URL"),
        GatewayKeyID:     os.Getenv("GATEWAY_KEY_ID"),
        GatewaySecret:    os.Getenv("GATEWAY_SECRET"),
    }
}

// must retrieves a required environment variable or exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// durOr parses an optional duration variable, falling back to def.
func durOr(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    d, err := time.ParseDuration(v)
    if err != nil {
        log.Fatalf("invalid duration for %s: %q", key, v)
    }
    return d
}

// getenv returns an environment variable or a default.  Shared by the
// cache and rate-limit config loaders.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
