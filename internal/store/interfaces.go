// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/wanderlust-offline/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// LocalStore is the durable on-device store holding cached trips, the sync
// queue and sync metadata. All methods are safe for concurrent use; the
// SQLite implementation serializes them over a single connection.
//
// Write methods return an error wrapping [ErrStorageQuotaExceeded] when the
// device ran out of the space allotted to the store. Read methods that look
// up a single record return nil without an error when it does not exist.
type LocalStore interface {
	// PutTrip inserts or replaces the snapshot of trip.TripID. CachedAt and
	// LastAccessed are set to now. Returns [ErrEmptyTripID] for an empty id.
	PutTrip(ctx context.Context, trip models.CachedTrip) error

	// GetTrip returns the snapshot or (nil, nil) when none is cached.
	// A hit refreshes LastAccessed; a miss never creates a row.
	GetTrip(ctx context.Context, tripID string) (*models.CachedTrip, error)

	// ListTripsByUser returns every snapshot owned by userID, most recently
	// accessed first.
	ListTripsByUser(ctx context.Context, userID string) ([]models.CachedTrip, error)

	// RemoveTrip deletes the snapshot. Removing a missing trip is not an error.
	RemoveTrip(ctx context.Context, tripID string) error

	// MarkTripSynced flips IsSynced to true for a cached snapshot once the
	// operation opID has been delivered. The flag stays false while a later
	// pending or failed_permanent operation for the trip is still queued.
	MarkTripSynced(ctx context.Context, tripID string, opID int64) error

	// CountTrips returns the number of cached snapshots.
	CountTrips(ctx context.Context) (int, error)

	// EnqueueOperation appends op to the queue as pending with zero retries
	// and the current timestamp, and returns it with its assigned ID.
	EnqueueOperation(ctx context.Context, op models.SyncOperation) (models.SyncOperation, error)

	// ListPending returns the pending operations in enqueue order.
	ListPending(ctx context.Context) ([]models.SyncOperation, error)

	// ListOperations returns operations with any of the given statuses (all
	// operations when none are given) in enqueue order.
	ListOperations(ctx context.Context, statuses ...models.OperationStatus) ([]models.SyncOperation, error)

	// CountOperations counts operations with any of the given statuses.
	CountOperations(ctx context.Context, statuses ...models.OperationStatus) (int, error)

	// UpdateOperation persists Status, Retries and LastError of op.
	// Returns [ErrOperationNotFound] when op.ID is unknown.
	UpdateOperation(ctx context.Context, op models.SyncOperation) error

	// ResetFailedPermanent moves every failed_permanent operation back to
	// pending with zero retries and returns how many were reset.
	ResetFailedPermanent(ctx context.Context) (int, error)

	// PurgeCompleted deletes completed operations and returns how many.
	PurgeCompleted(ctx context.Context) (int, error)

	// LastSync returns the time of the last completed drain, or nil.
	LastSync(ctx context.Context) (*time.Time, error)

	// SetLastSync records the time of a completed drain.
	SetLastSync(ctx context.Context, at time.Time) error

	// ClearAll wipes trips, queue and metadata in one transaction.
	ClearAll(ctx context.Context) error

	// ProbeQuota performs a test write and removes it again. It returns an
	// error wrapping [ErrStorageQuotaExceeded] when the write does not fit.
	ProbeQuota(ctx context.Context) error

	// Close releases the underlying database.
	Close() error
}

// ResponseCache stores HTTP responses for the interception layer.
type ResponseCache interface {
	// Put stores resp under resp.Key, replacing any earlier entry.
	Put(ctx context.Context, resp models.CachedResponse) error

	// Get returns the cached response or (nil, nil) when absent or expired.
	Get(ctx context.Context, key string) (*models.CachedResponse, error)

	// Delete removes one entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear drops every cached response.
	Clear(ctx context.Context) error

	// Close flushes and closes the cache.
	Close() error
}

// ErrorClassificator decides how a failed storage call should be treated.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
