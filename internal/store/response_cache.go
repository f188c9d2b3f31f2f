// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/models"
)

const responseKeyPrefix = "resp:"

// BadgerResponseCache is a [ResponseCache] backed by BadgerDB.
type BadgerResponseCache struct {
	db     *badger.DB
	ttl    time.Duration
	closed atomic.Bool
	logger *logger.Logger
	now    func() time.Time
}

// NewBadgerResponseCache opens the cache at cfg.Dir, or in memory when
// cfg.InMemory is set.
func NewBadgerResponseCache(cfg config.ClientCache, log *logger.Logger) (*BadgerResponseCache, error) {
	opts := badger.DefaultOptions(cfg.Dir)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		log.Err(err).Str("func", "NewBadgerResponseCache").Str("dir", cfg.Dir).Msg("failed to open response cache")
		return nil, fmt.Errorf("failed to open response cache: %w", err)
	}

	return &BadgerResponseCache{
		db:     db,
		ttl:    cfg.TTL,
		logger: log,
		now:    time.Now,
	}, nil
}

func responseKey(key string) []byte {
	return []byte(responseKeyPrefix + key)
}

func (c *BadgerResponseCache) Put(_ context.Context, resp models.CachedResponse) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	if resp.StoredAt.IsZero() {
		resp.StoredAt = c.now()
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode cached response: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(responseKey(resp.Key), data)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		c.logger.Err(err).Str("func", "BadgerResponseCache.Put").Str("key", resp.Key).Msg("failed to store response")
		return fmt.Errorf("failed to store response: %w", err)
	}

	return nil
}

func (c *BadgerResponseCache) Get(_ context.Context, key string) (*models.CachedResponse, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	var resp *models.CachedResponse
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(responseKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			var decoded models.CachedResponse
			if err := json.Unmarshal(val, &decoded); err != nil {
				return fmt.Errorf("failed to decode cached response: %w", err)
			}
			resp = &decoded
			return nil
		})
	})
	if err != nil {
		c.logger.Err(err).Str("func", "BadgerResponseCache.Get").Str("key", key).Msg("failed to read response")
		return nil, err
	}

	return resp, nil
}

func (c *BadgerResponseCache) Delete(_ context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(responseKey(key))
	})
}

func (c *BadgerResponseCache) Clear(_ context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	if err := c.db.DropPrefix([]byte(responseKeyPrefix)); err != nil {
		return fmt.Errorf("failed to clear response cache: %w", err)
	}
	return nil
}

// Close closes the database. Calling it twice is a no-op.
func (c *BadgerResponseCache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.db.Close()
}
