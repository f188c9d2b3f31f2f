// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the offline trip cache: the UI-facing API, the
// sync queue manager, the synchronizer that replays queued mutations against
// the remote trip API, and the connectivity monitor that triggers it.
package service

import (
	"context"

	"github.com/MKhiriev/wanderlust-offline/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// OfflineService is the API used by the UI (HTTP handlers and the terminal
// dashboard).
//
// Every write returns an error wrapping store.ErrStorageQuotaExceeded when
// local storage is full. The condition is latched and reported by
// GetSyncStatus until a probe write succeeds again.
type OfflineService interface {
	// SaveTripForOffline caches a server-confirmed trip for offline viewing.
	// Nothing is queued. A non-empty userID overrides trip.UserID.
	SaveTripForOffline(ctx context.Context, trip models.Trip, userID string) error

	// GetOfflineTrips returns the trips cached for userID, most recently
	// viewed first.
	GetOfflineTrips(ctx context.Context, userID string) ([]models.CachedTrip, error)

	// GetOfflineTrip returns the cached trip or nil when it is not cached.
	GetOfflineTrip(ctx context.Context, tripID string) (*models.CachedTrip, error)

	// RecordUpdate writes the snapshot and, when needsSync is set, queues an
	// update carrying the full payload.
	RecordUpdate(ctx context.Context, trip models.Trip, needsSync bool) error

	// RecordDelete removes the snapshot and, when needsSync is set, queues a
	// delete.
	RecordDelete(ctx context.Context, tripID, userID string, needsSync bool) error

	// RecordCreate queues a create. The trip has no server id yet, so no
	// snapshot is written.
	RecordCreate(ctx context.Context, trip models.Trip) (models.SyncOperation, error)

	// GetSyncStatus summarizes the queue and the cache.
	GetSyncStatus(ctx context.Context) (models.SyncStatus, error)

	// SyncNow runs a drain in the calling goroutine.
	SyncNow(ctx context.Context) (models.DrainResult, error)

	// RetryFailed moves every failed_permanent operation back to pending
	// with zero retries and triggers a drain. Returns how many were reset.
	RetryFailed(ctx context.Context) (int, error)

	// ClearAll wipes trips, queue, metadata and cached responses.
	ClearAll(ctx context.Context) error
}

// Synchronizer drains the sync queue against the remote trip API.
type Synchronizer interface {
	// Drain dispatches pending operations in enqueue order, one at a time.
	// A call made while another drain is running returns a Skipped result,
	// and a call made while offline returns a Deferred one. Neither is an
	// error. Failures of single operations are recorded on the operations
	// and never abort the pass.
	Drain(ctx context.Context) (models.DrainResult, error)
}

// Pinger checks that the remote server is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
