// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] for unset optional values.
const (
	DefaultHTTPAddress     = "localhost:8787"
	DefaultRequestTimeout  = 10 * time.Second
	DefaultSyncInterval    = 30 * time.Second
	DefaultProbeInterval   = 5 * time.Second
	DefaultBreakerFailures = 5
	DefaultBreakerTimeout  = 30 * time.Second
	DefaultAPIPrefix       = "/api/"
	DefaultTripListPath    = "/listings"
	DefaultSessionCapacity = 1024
	DefaultSessionTTL      = 24 * time.Hour
	DefaultLogLevel        = "info"
)

// ClientApp holds the traveller identity and logging settings.
type ClientApp struct {
	UserID   string
	APIToken string
	LogLevel string
	LogFile  string
	Version  string
	Headless bool
}

// ClientAdapter holds the remote trip API settings.
type ClientAdapter struct {
	BaseURL         string
	RequestTimeout  time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// ClientDB contains the SQLite Local Store settings.
type ClientDB struct {
	DSN          string
	MaxPageCount int
}

// ClientCache contains the response cache settings.
type ClientCache struct {
	Dir      string
	InMemory bool
	TTL      time.Duration
}

// ClientStorage groups the local persistence settings.
type ClientStorage struct {
	DB    ClientDB
	Cache ClientCache
}

// ClientWorkers contains background job intervals.
type ClientWorkers struct {
	SyncInterval  time.Duration
	ProbeInterval time.Duration
}

// ClientServer contains the local listener settings.
type ClientServer struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// ClientInterceptor contains the interception layer routing knobs.
type ClientInterceptor struct {
	APIPrefix       string
	TripListPath    string
	OfflinePagePath string
}

// ClientSession contains the session context bounds.
type ClientSession struct {
	Capacity int
	TTL      time.Duration
}

// ClientConfig is the validated configuration of the offline client,
// assembled from [StructuredConfig] with defaults applied.
type ClientConfig struct {
	App         ClientApp
	Adapter     ClientAdapter
	Storage     ClientStorage
	Workers     ClientWorkers
	Server      ClientServer
	Interceptor ClientInterceptor
	Session     ClientSession
}

// GetClientConfig loads the merged structured config, maps it onto a
// [ClientConfig], fills defaults and validates the result.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps cfg onto a [ClientConfig] and fills defaults. It does
// not validate.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			UserID:   cfg.App.UserID,
			APIToken: cfg.App.APIToken,
			LogLevel: cfg.App.LogLevel,
			LogFile:  cfg.App.LogFile,
			Version:  cfg.App.Version,
			Headless: cfg.App.Headless,
		},
		Adapter: ClientAdapter{
			BaseURL:         cfg.Adapter.BaseURL,
			RequestTimeout:  cfg.Adapter.RequestTimeout,
			BreakerFailures: cfg.Adapter.BreakerFailures,
			BreakerTimeout:  cfg.Adapter.BreakerTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN:          cfg.Storage.DB.DSN,
				MaxPageCount: cfg.Storage.DB.MaxPageCount,
			},
			Cache: ClientCache{
				Dir:      cfg.Storage.Cache.Dir,
				InMemory: cfg.Storage.Cache.InMemory,
				TTL:      cfg.Storage.Cache.TTL,
			},
		},
		Workers: ClientWorkers{
			SyncInterval:  cfg.Workers.SyncInterval,
			ProbeInterval: cfg.Workers.ProbeInterval,
		},
		Server: ClientServer{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		},
		Interceptor: ClientInterceptor{
			APIPrefix:       cfg.Interceptor.APIPrefix,
			TripListPath:    cfg.Interceptor.TripListPath,
			OfflinePagePath: cfg.Interceptor.OfflinePagePath,
		},
		Session: ClientSession{
			Capacity: cfg.Session.Capacity,
			TTL:      cfg.Session.TTL,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.BreakerFailures == 0 {
		cfg.Adapter.BreakerFailures = DefaultBreakerFailures
	}
	if cfg.Adapter.BreakerTimeout == 0 {
		cfg.Adapter.BreakerTimeout = DefaultBreakerTimeout
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.ProbeInterval == 0 {
		cfg.Workers.ProbeInterval = DefaultProbeInterval
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Interceptor.APIPrefix == "" {
		cfg.Interceptor.APIPrefix = DefaultAPIPrefix
	}
	if cfg.Interceptor.TripListPath == "" {
		cfg.Interceptor.TripListPath = DefaultTripListPath
	}
	if cfg.Session.Capacity == 0 {
		cfg.Session.Capacity = DefaultSessionCapacity
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = DefaultSessionTTL
	}
}
