// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks the merged [StructuredConfig] for values that are wrong no
// matter which runtime consumes them. Missing values are not an error here.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.BaseURL != "" {
		if _, err := parseBaseURL(cfg.Adapter.BaseURL); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAdapterConfigs, err)
		}
	}
	if cfg.Adapter.RequestTimeout < 0 || cfg.Server.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Workers.SyncInterval < 0 || cfg.Workers.ProbeInterval < 0 {
		return ErrInvalidWorkerConfigs
	}
	if cfg.Session.Capacity < 0 {
		return ErrInvalidSessionConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || cfg.Storage.DB.MaxPageCount < 0 {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.Cache.Dir == "" && !cfg.Storage.Cache.InMemory {
		return ErrInvalidStorageConfigs
	}

	if _, err := parseBaseURL(cfg.Adapter.BaseURL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAdapterConfigs, err)
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.ProbeInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.UserID == "" && cfg.App.APIToken == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Session.Capacity <= 0 {
		return ErrInvalidSessionConfigs
	}

	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host in %q", raw)
	}
	return u, nil
}
