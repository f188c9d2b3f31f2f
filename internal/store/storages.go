// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
)

// ClientStorages groups the two on-device stores.
type ClientStorages struct {
	// Local is the SQLite store of trips, sync queue and metadata.
	Local LocalStore

	// Responses is the Badger cache used by the interception layer.
	Responses ResponseCache
}

// NewClientStorages opens SQLite, applies migrations and opens the response
// cache. On failure everything opened so far is closed again.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	local, err := NewLocalStore(db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	responses, err := NewBadgerResponseCache(cfg.Cache, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &ClientStorages{Local: local, Responses: responses}, nil
}

// Close closes both stores.
func (s *ClientStorages) Close() error {
	return errors.Join(s.Local.Close(), s.Responses.Close())
}
