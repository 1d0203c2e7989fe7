// Package config provides configuration management for the rental BFF.
//
// Values come from environment variables and, when present, an app.env file
// in the working directory or ./config. Environment variables win.
package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	API      APIConfig
	Query    QueryConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// APIConfig locates the rental GraphQL API.
type APIConfig struct {
	Host            string
	GraphQLPath     string
	Timeout         time.Duration
	VerificationURL string
	PageSize        int
}

// Endpoint returns the GraphQL endpoint URL.
func (c APIConfig) Endpoint() string {
	return strings.TrimRight(c.Host, "/") + "/" + strings.TrimLeft(c.GraphQLPath, "/")
}

// QueryConfig holds query cache configuration.
type QueryConfig struct {
	CacheSize int
	StaleTime time.Duration
	// GCTime is how long an unused entry stays in the store.
	GCTime time.Duration
	Retry  int
	// FetchTimeout bounds a shared upstream fetch, retries included.
	FetchTimeout time.Duration
}

// RedisConfig holds the shared query cache store. An empty URL keeps the
// cache in process memory.
type RedisConfig struct {
	URL string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	DraftTTL     time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

var defaults = map[string]any{
	"PORT":            "8080",
	"RATE_LIMIT":      100,
	"RATE_WINDOW":     time.Minute,
	"REQUEST_TIMEOUT": 30 * time.Second,

	"API_HOST":         "http://localhost:8000",
	"GRAPHQL_PATH":     "/graphql",
	"GRAPHQL_TIMEOUT":  15 * time.Second,
	"VERIFICATION_URL": "/verify-email",
	"PAGE_SIZE":        10,

	"QUERY_CACHE_SIZE": 1000,
	"QUERY_STALE_TIME": 30 * time.Second,
	"QUERY_GC_TIME":    5 * time.Minute,
	"QUERY_RETRY":      3,

	"QUERY_FETCH_TIMEOUT": 30 * time.Second,

	"MONGODB_URI":                       "mongodb://localhost:27017",
	"MONGODB_DATABASE":                  "rental_bff",
	"MONGODB_LOGS_TTL":                  30 * 24 * time.Hour,
	"MONGODB_ENABLED":                   false,
	"DRAFT_TTL":                         24 * time.Hour,
	"CIRCUIT_BREAKER_FAILURE_THRESHOLD": 5,
	"CIRCUIT_BREAKER_SUCCESS_THRESHOLD": 2,
	"CIRCUIT_BREAKER_TIMEOUT":           30 * time.Second,

	"LOG_LEVEL":  "info",
	"LOG_PRETTY": false,
}

// Load creates a Config from environment variables and the optional app.env file.
// Values that do not parse fall back to their defaults.
func Load() Config {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	_ = v.ReadInConfig()

	return Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			RateLimit:      getInt(v, "RATE_LIMIT"),
			RateWindow:     getDuration(v, "RATE_WINDOW"),
			RequestTimeout: getDuration(v, "REQUEST_TIMEOUT"),
			CORSOrigins:    parseCORSOrigins(v.GetString("CORS_ORIGINS")),
			SwaggerUser:    v.GetString("SWAGGER_USER"),
			SwaggerPass:    v.GetString("SWAGGER_PASS"),
		},
		API: APIConfig{
			Host:            v.GetString("API_HOST"),
			GraphQLPath:     v.GetString("GRAPHQL_PATH"),
			Timeout:         getDuration(v, "GRAPHQL_TIMEOUT"),
			VerificationURL: v.GetString("VERIFICATION_URL"),
			PageSize:        getInt(v, "PAGE_SIZE"),
		},
		Query: QueryConfig{
			CacheSize: getInt(v, "QUERY_CACHE_SIZE"),
			StaleTime: getDuration(v, "QUERY_STALE_TIME"),
			GCTime:    getDuration(v, "QUERY_GC_TIME"),
			Retry:     getInt(v, "QUERY_RETRY"),

			FetchTimeout: getDuration(v, "QUERY_FETCH_TIMEOUT"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		Database: DatabaseConfig{
			URI:                            v.GetString("MONGODB_URI"),
			DatabaseName:                   v.GetString("MONGODB_DATABASE"),
			LogsTTL:                        getDuration(v, "MONGODB_LOGS_TTL"),
			DraftTTL:                       getDuration(v, "DRAFT_TTL"),
			Enabled:                        getBool(v, "MONGODB_ENABLED"),
			CircuitBreakerFailureThreshold: getInt(v, "CIRCUIT_BREAKER_FAILURE_THRESHOLD"),
			CircuitBreakerSuccessThreshold: getInt(v, "CIRCUIT_BREAKER_SUCCESS_THRESHOLD"),
			CircuitBreakerTimeout:          getDuration(v, "CIRCUIT_BREAKER_TIMEOUT"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: getBool(v, "LOG_PRETTY"),
		},
	}
}

func getInt(v *viper.Viper, key string) int {
	if i, err := strconv.Atoi(strings.TrimSpace(v.GetString(key))); err == nil {
		return i
	}
	return defaults[key].(int)
}

func getBool(v *viper.Viper, key string) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key))); err == nil {
		return b
	}
	return defaults[key].(bool)
}

func getDuration(v *viper.Viper, key string) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key))); err == nil {
		return d
	}
	return defaults[key].(time.Duration)
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	origins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return origins
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(origins))
	result = append(result, origins...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
