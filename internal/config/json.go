// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations.
type StructuredJSONConfig struct {
	App struct {
		UserID   string `json:"user_id"`
		APIToken string `json:"api_token"`
		LogLevel string `json:"log_level"`
		LogFile  string `json:"log_file"`
		Version  string `json:"version"`
		Headless bool   `json:"headless"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn"`
			MaxPageCount int    `json:"max_page_count"`
		} `json:"db,omitempty"`

		Cache struct {
			Dir      string   `json:"dir"`
			InMemory bool     `json:"in_memory"`
			TTL      Duration `json:"ttl"`
		} `json:"cache,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Adapter struct {
		BaseURL         string   `json:"base_url"`
		RequestTimeout  Duration `json:"request_timeout"`
		BreakerFailures uint32   `json:"breaker_failures"`
		BreakerTimeout  Duration `json:"breaker_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval  Duration `json:"sync_interval"`
		ProbeInterval Duration `json:"probe_interval"`
	} `json:"workers,omitempty"`

	Interceptor struct {
		APIPrefix       string `json:"api_prefix"`
		TripListPath    string `json:"trip_list_path"`
		OfflinePagePath string `json:"offline_page"`
	} `json:"interceptor,omitempty"`

	Session struct {
		Capacity int      `json:"capacity"`
		TTL      Duration `json:"ttl"`
	} `json:"session,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			UserID:   jsonCfg.App.UserID,
			APIToken: jsonCfg.App.APIToken,
			LogLevel: jsonCfg.App.LogLevel,
			LogFile:  jsonCfg.App.LogFile,
			Version:  jsonCfg.App.Version,
			Headless: jsonCfg.App.Headless,
		},
		Storage: Storage{
			DB: DB{
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxPageCount: jsonCfg.Storage.DB.MaxPageCount,
			},
			Cache: Cache{
				Dir:      jsonCfg.Storage.Cache.Dir,
				InMemory: jsonCfg.Storage.Cache.InMemory,
				TTL:      time.Duration(jsonCfg.Storage.Cache.TTL),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
		},
		Adapter: Adapter{
			BaseURL:         jsonCfg.Adapter.BaseURL,
			RequestTimeout:  time.Duration(jsonCfg.Adapter.RequestTimeout),
			BreakerFailures: jsonCfg.Adapter.BreakerFailures,
			BreakerTimeout:  time.Duration(jsonCfg.Adapter.BreakerTimeout),
		},
		Workers: Workers{
			SyncInterval:  time.Duration(jsonCfg.Workers.SyncInterval),
			ProbeInterval: time.Duration(jsonCfg.Workers.ProbeInterval),
		},
		Interceptor: Interceptor{
			APIPrefix:       jsonCfg.Interceptor.APIPrefix,
			TripListPath:    jsonCfg.Interceptor.TripListPath,
			OfflinePagePath: jsonCfg.Interceptor.OfflinePagePath,
		},
		Session: Session{
			Capacity: jsonCfg.Session.Capacity,
			TTL:      time.Duration(jsonCfg.Session.TTL),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
