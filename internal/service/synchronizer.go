// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/wanderlust-offline/internal/adapter"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/metrics"
	"github.com/MKhiriev/wanderlust-offline/internal/store"
	"github.com/MKhiriev/wanderlust-offline/models"
)

// onlineChecker is the part of ConnectivityMonitor the synchronizer needs.
type onlineChecker interface {
	IsOnline() bool
}

type synchronizer struct {
	store        store.LocalStore
	api          adapter.TripAPI
	connectivity onlineChecker
	quota        *quotaGuard

	running atomic.Bool
	now     func() time.Time

	logger *logger.Logger
}

// NewSynchronizer creates a Synchronizer replaying the queue of localStore
// against api whenever connectivity reports online.
func NewSynchronizer(localStore store.LocalStore, api adapter.TripAPI, connectivity *ConnectivityMonitor, log *logger.Logger) Synchronizer {
	return newSynchronizer(localStore, api, connectivity, newQuotaGuard(localStore), log)
}

func newSynchronizer(localStore store.LocalStore, api adapter.TripAPI, connectivity onlineChecker, quota *quotaGuard, log *logger.Logger) *synchronizer {
	return &synchronizer{
		store:        localStore,
		api:          api,
		connectivity: connectivity,
		quota:        quota,
		now:          time.Now,
		logger:       log,
	}
}

// Drain implements [Synchronizer].
func (s *synchronizer) Drain(ctx context.Context) (models.DrainResult, error) {
	var result models.DrainResult

	if !s.running.CompareAndSwap(false, true) {
		result.Skipped = true
		metrics.SyncDrains.WithLabelValues("skipped").Inc()
		return result, nil
	}
	defer s.running.Store(false)

	if !s.connectivity.IsOnline() {
		result.Deferred = true
		metrics.SyncDrains.WithLabelValues("deferred").Inc()
		return result, nil
	}

	if err := s.quota.allow(ctx); err != nil {
		result.QuotaExceeded = true
		metrics.SyncDrains.WithLabelValues("quota_exceeded").Inc()
		s.logger.Warn().Err(err).Msg("local storage still full, drain not started")
		return result, nil
	}

	ops, err := s.store.ListPending(ctx)
	if err != nil {
		metrics.SyncDrains.WithLabelValues("error").Inc()
		return result, fmt.Errorf("list pending operations: %w", err)
	}
	if len(ops) == 0 {
		return s.finish(ctx, result, true)
	}

	started := s.now()
	defer func() {
		metrics.SyncDrainDuration.Observe(s.now().Sub(started).Seconds())
	}()

	complete := true
	for _, op := range ops {
		if ctx.Err() != nil {
			complete = false
			break
		}

		result.Attempted++
		if !s.process(ctx, op, &result) {
			complete = false
			break
		}
	}

	return s.finish(ctx, result, complete)
}

// process dispatches op and persists its new state. It returns false when
// the pass must stop writing.
func (s *synchronizer) process(ctx context.Context, op models.SyncOperation, result *models.DrainResult) bool {
	log := s.logger.With().
		Int64("op_id", op.ID).
		Str("type", string(op.Type)).
		Str("trip_id", op.TripIDValue()).
		Logger()

	// a started operation runs to completion, state write included
	ctx = context.WithoutCancel(ctx)

	created, dispatchErr := s.dispatch(ctx, op)

	outcome := "success"
	if dispatchErr == nil {
		op.RecordSuccess()
		result.Succeeded++
	} else {
		op.RecordFailure(dispatchErr)
		result.Failed++
		outcome = "retry"
		if op.Status == models.OperationFailedPermanent {
			result.PermanentlyFailed++
			outcome = "failed_permanent"
			log.Warn().Err(dispatchErr).Int("retries", op.Retries).Msg("operation failed permanently")
		} else {
			log.Info().Err(dispatchErr).Int("retries", op.Retries).Msg("operation failed, will retry")
		}
	}
	metrics.SyncOperations.WithLabelValues(string(op.Type), outcome).Inc()

	if err := s.store.UpdateOperation(ctx, op); err != nil {
		if s.stopOnQuota(err, result) {
			return false
		}
		log.Error().Err(err).Msg("error persisting operation state")
		return true
	}

	if dispatchErr != nil {
		return true
	}

	if err := s.applyToCache(ctx, op, created); err != nil {
		if s.stopOnQuota(err, result) {
			return false
		}
		log.Warn().Err(err).Msg("error updating cached trip after sync")
	}

	return true
}

func (s *synchronizer) dispatch(ctx context.Context, op models.SyncOperation) (models.Trip, error) {
	switch op.Type {
	case models.OperationCreate:
		return s.api.CreateTrip(ctx, models.Trip{UserID: op.UserID, Payload: op.Payload})
	case models.OperationUpdate:
		if op.TripID == nil {
			return models.Trip{}, ErrEmptyTripID
		}
		return models.Trip{}, s.api.UpdateTrip(ctx, *op.TripID, op.Payload)
	case models.OperationDelete:
		if op.TripID == nil {
			return models.Trip{}, ErrEmptyTripID
		}
		return models.Trip{}, s.api.DeleteTrip(ctx, *op.TripID)
	default:
		return models.Trip{}, fmt.Errorf("%w: %q", store.ErrInvalidOperation, op.Type)
	}
}

// applyToCache reflects a confirmed operation in the trip snapshots.
func (s *synchronizer) applyToCache(ctx context.Context, op models.SyncOperation, created models.Trip) error {
	switch op.Type {
	case models.OperationUpdate:
		return s.store.MarkTripSynced(ctx, *op.TripID, op.ID)
	case models.OperationCreate:
		if created.ID == "" {
			return nil
		}
		return s.store.PutTrip(ctx, models.CachedTrip{
			TripID:   created.ID,
			UserID:   op.UserID,
			Payload:  created.Payload,
			IsSynced: true,
		})
	}
	return nil
}

func (s *synchronizer) stopOnQuota(err error, result *models.DrainResult) bool {
	if !errors.Is(err, store.ErrStorageQuotaExceeded) {
		return false
	}

	s.quota.observe(err)
	result.QuotaExceeded = true
	s.logger.Warn().Err(err).Msg("local storage full, stopping drain")
	return true
}

// finish purges completed operations and stamps lastSync when the whole
// queue was walked.
func (s *synchronizer) finish(ctx context.Context, result models.DrainResult, complete bool) (models.DrainResult, error) {
	result.Partial = result.PermanentlyFailed > 0

	if !complete {
		label := "interrupted"
		if result.QuotaExceeded {
			label = "quota_exceeded"
		}
		metrics.SyncDrains.WithLabelValues(label).Inc()
		return result, ctx.Err()
	}

	purged, err := s.store.PurgeCompleted(ctx)
	if err != nil {
		metrics.SyncDrains.WithLabelValues("error").Inc()
		return result, fmt.Errorf("purge completed operations: %w", err)
	}
	result.Purged = purged

	if err = s.store.SetLastSync(ctx, s.now().UTC()); err != nil {
		s.quota.observe(err)
		result.QuotaExceeded = errors.Is(err, store.ErrStorageQuotaExceeded)
		metrics.SyncDrains.WithLabelValues("error").Inc()
		return result, fmt.Errorf("set last sync: %w", err)
	}

	label := "completed"
	if result.Partial {
		label = "partial"
	}
	metrics.SyncDrains.WithLabelValues(label).Inc()

	if result.Attempted > 0 {
		s.logger.Info().
			Int("attempted", result.Attempted).
			Int("succeeded", result.Succeeded).
			Int("failed", result.Failed).
			Int("failed_permanent", result.PermanentlyFailed).
			Int("purged", result.Purged).
			Msg("sync queue drained")
	}

	return result, nil
}
