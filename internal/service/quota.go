// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/MKhiriev/wanderlust-offline/internal/metrics"
	"github.com/MKhiriev/wanderlust-offline/internal/store"
)

// quotaGuard latches storage exhaustion. While latched, writes are not
// attempted until a probe write succeeds again.
type quotaGuard struct {
	exceeded atomic.Bool
	store    store.LocalStore
}

func newQuotaGuard(localStore store.LocalStore) *quotaGuard {
	return &quotaGuard{store: localStore}
}

// observe latches the guard when err is a quota error and passes err through.
func (q *quotaGuard) observe(err error) error {
	if err != nil && errors.Is(err, store.ErrStorageQuotaExceeded) {
		if !q.exceeded.Swap(true) {
			metrics.StorageQuotaExceeded.Inc()
		}
	}
	return err
}

// allow reports whether a write may be attempted. When the guard is latched
// it probes the store and releases the latch if the probe fits.
func (q *quotaGuard) allow(ctx context.Context) error {
	if !q.exceeded.Load() {
		return nil
	}

	if err := q.store.ProbeQuota(ctx); err != nil {
		return err
	}

	q.exceeded.Store(false)
	return nil
}

func (q *quotaGuard) isExceeded() bool {
	return q.exceeded.Load()
}

func (q *quotaGuard) reset() {
	q.exceeded.Store(false)
}
