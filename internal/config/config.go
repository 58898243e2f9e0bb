package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port               string
	MongoURI           string
	MongoDatabase      string
	RedisURI           string
	AdminRegisterToken string   // secret required by POST /api/register; empty disables registration
	AllowedOrigins     []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	Environment        string   // ENV: production, development, etc.
	AllowedHost        string   // production Host header check; empty disables it
	TrustProxy         bool     // honour X-Forwarded-For; only behind a proxy that sets it
	LogLevel           string
}

func Load() *Config {
	mongoURI := getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/encuestas"))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{getEnv("FRONTEND_URL", "http://localhost:3000")}
	}

	return &Config{
		Port:               getEnv("PORT", "3001"),
		MongoURI:           mongoURI,
		MongoDatabase:      getEnv("MONGODB_DB", databaseFromURI(mongoURI, "encuestas")),
		RedisURI:           getEnv("REDIS_URI", "redis://localhost:6379/0"),
		AdminRegisterToken: os.Getenv("ADMIN_REGISTER_TOKEN"),
		AllowedOrigins:     allowedOrigins,
		Environment:        strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
		AllowedHost:        os.Getenv("ALLOWED_HOST"),
		TrustProxy:         parseBool(os.Getenv("TRUST_PROXY")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MaskedMongoURI is the connection string with its password hidden, for logs.
func (c *Config) MaskedMongoURI() string {
	u, err := url.Parse(c.MongoURI)
	if err != nil || u.User == nil {
		return c.MongoURI
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}

// databaseFromURI extracts the database name from mongodb://host/<name>?...
func databaseFromURI(uri, fallback string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return fallback
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return fallback
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
