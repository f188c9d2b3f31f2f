// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// WanderLust offline client. It is populated by merging environment
// variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the identity of the signed-in traveller and logging settings.
	App App `envPrefix:"APP_"`

	// Storage holds the local SQLite store and the response cache settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the address of the local proxy/API listener.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote trip API endpoint and circuit breaker settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the periodic sync and connectivity probe intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// Interceptor holds the routing knobs of the network interception layer.
	Interceptor Interceptor `envPrefix:"INTERCEPTOR_"`

	// Session holds the bounded session context settings.
	Session Session `envPrefix:"SESSION_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level values.
type App struct {
	// UserID is the traveller whose trips are cached when no id can be
	// derived from the API token.
	// Env: APP_USER_ID
	UserID string `env:"USER_ID"`

	// APIToken is the bearer token sent to the remote trip API. Its "sub"
	// claim is used as the user id when UserID is empty.
	// Env: APP_API_TOKEN
	APIToken string `env:"API_TOKEN"`

	// LogLevel is the zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile is where the interactive client writes its logs.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// Version is the semantic version of the running client.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// Headless skips the terminal dashboard and only runs the background
	// workers and the local listener.
	// Env: APP_HEADLESS
	Headless bool `env:"HEADLESS"`
}

// Storage groups the configuration for both local persistence backends.
type Storage struct {
	// DB holds the SQLite Local Store settings.
	DB DB `envPrefix:"DB_"`

	// Cache holds the Badger response cache settings.
	Cache Cache `envPrefix:"CACHE_"`
}

// DB holds the SQLite Local Store settings.
type DB struct {
	// DSN is the SQLite data source, usually a file path
	// (e.g. "file:wanderlust.db?_busy_timeout=5000").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`

	// MaxPageCount caps the database size through PRAGMA max_page_count.
	// Zero leaves the SQLite default in place.
	// Env: STORAGE_DB_MAX_PAGE_COUNT
	MaxPageCount int `env:"MAX_PAGE_COUNT"`
}

// Cache holds the Badger response cache settings.
type Cache struct {
	// Dir is the Badger data directory.
	// Env: STORAGE_CACHE_DIR
	Dir string `env:"DIR"`

	// InMemory runs Badger without touching disk.
	// Env: STORAGE_CACHE_IN_MEMORY
	InMemory bool `env:"IN_MEMORY"`

	// TTL expires cached responses. Zero keeps them until overwritten.
	// Env: STORAGE_CACHE_TTL
	TTL time.Duration `env:"TTL"`
}

// Server holds the local listener settings.
type Server struct {
	// HTTPAddress is the "host:port" the local proxy listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AllowedOrigins lists CORS origins for the offline API.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Adapter holds the remote trip API settings.
type Adapter struct {
	// BaseURL is the WanderLust site root, e.g. "https://wanderlust.example".
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// BreakerFailures is the number of consecutive failures that opens the
	// circuit breaker.
	// Env: ADAPTER_BREAKER_FAILURES
	BreakerFailures uint32 `env:"BREAKER_FAILURES"`

	// BreakerTimeout is how long the breaker stays open before probing.
	// Env: ADAPTER_BREAKER_TIMEOUT
	BreakerTimeout time.Duration `env:"BREAKER_TIMEOUT"`
}

// Workers holds background job intervals.
type Workers struct {
	// SyncInterval is how often the queue is drained while online.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ProbeInterval is how often connectivity is probed.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Interceptor holds the routing knobs of the interception layer.
type Interceptor struct {
	// APIPrefix marks sync-relevant API reads (default "/api/").
	// Env: INTERCEPTOR_API_PREFIX
	APIPrefix string `env:"API_PREFIX"`

	// TripListPath is the redirect target when a trip detail is unavailable
	// (default "/listings").
	// Env: INTERCEPTOR_TRIP_LIST_PATH
	TripListPath string `env:"TRIP_LIST_PATH"`

	// OfflinePagePath points to a custom offline HTML page. Empty uses the
	// built-in page.
	// Env: INTERCEPTOR_OFFLINE_PAGE
	OfflinePagePath string `env:"OFFLINE_PAGE"`
}

// Session holds the bounded session context settings.
type Session struct {
	// Capacity is the maximum number of sessions kept in memory.
	// Env: SESSION_CAPACITY
	Capacity int `env:"CAPACITY"`

	// TTL evicts sessions idle for longer than this.
	// Env: SESSION_TTL
	TTL time.Duration `env:"TTL"`
}

// GetStructuredConfig loads and merges the configuration from all sources
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
