package app

import (
	"time"

	"github.com/rentaldesk/rental-bff/config"
)

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 5 * time.Second,
		},
		API: config.APIConfig{
			Host:        "http://127.0.0.1:1",
			GraphQLPath: "/graphql",
			Timeout:     time.Second,
			PageSize:    10,
		},
		Query: config.QueryConfig{
			CacheSize: 100,
			StaleTime: time.Minute,
			GCTime:    5 * time.Minute,
			Retry:     0,
		},
		Database: config.DatabaseConfig{
			DraftTTL: time.Hour,
		},
		Log: config.LogConfig{Level: "error"},
	}
}
