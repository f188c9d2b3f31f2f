// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/metrics"
	"github.com/MKhiriev/wanderlust-offline/internal/store"
	"github.com/MKhiriev/wanderlust-offline/internal/validators"
	"github.com/MKhiriev/wanderlust-offline/models"
)

type offlineService struct {
	store        store.LocalStore
	responses    store.ResponseCache
	synchronizer Synchronizer
	connectivity onlineChecker
	validator    validators.Validator
	quota        *quotaGuard

	// drains started by mutations
	wg sync.WaitGroup

	logger *logger.Logger
}

// SaveTripForOffline implements [OfflineService].
func (s *offlineService) SaveTripForOffline(ctx context.Context, trip models.Trip, userID string) error {
	if userID = strings.TrimSpace(userID); userID != "" {
		trip.UserID = userID
	}
	return s.RecordUpdate(ctx, trip, false)
}

// GetOfflineTrips implements [OfflineService].
func (s *offlineService) GetOfflineTrips(ctx context.Context, userID string) ([]models.CachedTrip, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrNoUserID
	}

	trips, err := s.store.ListTripsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list offline trips: %w", err)
	}
	return trips, nil
}

// GetOfflineTrip implements [OfflineService].
func (s *offlineService) GetOfflineTrip(ctx context.Context, tripID string) (*models.CachedTrip, error) {
	if strings.TrimSpace(tripID) == "" {
		return nil, ErrEmptyTripID
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("get offline trip: %w", err)
	}
	return trip, nil
}

// RecordUpdate implements [OfflineService].
func (s *offlineService) RecordUpdate(ctx context.Context, trip models.Trip, needsSync bool) error {
	if strings.TrimSpace(trip.ID) == "" {
		return ErrEmptyTripID
	}
	if err := s.validate(ctx, trip); err != nil {
		return err
	}
	if err := s.quota.allow(ctx); err != nil {
		return err
	}

	err := s.store.PutTrip(ctx, models.CachedTrip{
		TripID:   trip.ID,
		UserID:   trip.UserID,
		Payload:  trip.Payload,
		IsSynced: !needsSync,
	})
	if err != nil {
		return s.quota.observe(fmt.Errorf("save trip snapshot: %w", err))
	}

	if !needsSync {
		return nil
	}

	tripID := trip.ID
	_, err = s.store.EnqueueOperation(ctx, models.SyncOperation{
		Type:    models.OperationUpdate,
		TripID:  &tripID,
		UserID:  trip.UserID,
		Payload: trip.Payload,
	})
	if err != nil {
		return s.quota.observe(fmt.Errorf("queue trip update: %w", err))
	}

	s.logger.Debug().Str("trip_id", trip.ID).Str("user_id", trip.UserID).Msg("trip update queued")
	s.triggerDrain(ctx)
	return nil
}

// RecordDelete implements [OfflineService].
func (s *offlineService) RecordDelete(ctx context.Context, tripID, userID string, needsSync bool) error {
	if strings.TrimSpace(tripID) == "" {
		return ErrEmptyTripID
	}
	if needsSync && strings.TrimSpace(userID) == "" {
		return ErrNoUserID
	}

	// A snapshot is only removed once its delete is queued.
	if needsSync {
		if err := s.quota.allow(ctx); err != nil {
			return err
		}

		_, err := s.store.EnqueueOperation(ctx, models.SyncOperation{
			Type:   models.OperationDelete,
			TripID: &tripID,
			UserID: userID,
		})
		if err != nil {
			return s.quota.observe(fmt.Errorf("queue trip delete: %w", err))
		}
	}

	if err := s.store.RemoveTrip(ctx, tripID); err != nil {
		return fmt.Errorf("remove trip snapshot: %w", err)
	}

	if !needsSync {
		return nil
	}

	s.logger.Debug().Str("trip_id", tripID).Str("user_id", userID).Msg("trip delete queued")
	s.triggerDrain(ctx)
	return nil
}

// RecordCreate implements [OfflineService].
func (s *offlineService) RecordCreate(ctx context.Context, trip models.Trip) (models.SyncOperation, error) {
	if err := s.validate(ctx, trip); err != nil {
		return models.SyncOperation{}, err
	}
	if err := s.quota.allow(ctx); err != nil {
		return models.SyncOperation{}, err
	}

	op, err := s.store.EnqueueOperation(ctx, models.SyncOperation{
		Type:    models.OperationCreate,
		UserID:  trip.UserID,
		Payload: trip.Payload,
	})
	if err != nil {
		return models.SyncOperation{}, s.quota.observe(fmt.Errorf("queue trip create: %w", err))
	}

	s.logger.Debug().Int64("op_id", op.ID).Str("user_id", trip.UserID).Msg("trip create queued")
	s.triggerDrain(ctx)
	return op, nil
}

// GetSyncStatus implements [OfflineService].
func (s *offlineService) GetSyncStatus(ctx context.Context) (models.SyncStatus, error) {
	var status models.SyncStatus

	pending, err := s.store.CountOperations(ctx, models.OperationPending)
	if err != nil {
		return status, fmt.Errorf("count pending operations: %w", err)
	}
	failed, err := s.store.CountOperations(ctx, models.OperationFailedPermanent)
	if err != nil {
		return status, fmt.Errorf("count failed operations: %w", err)
	}
	cached, err := s.store.CountTrips(ctx)
	if err != nil {
		return status, fmt.Errorf("count cached trips: %w", err)
	}
	lastSync, err := s.store.LastSync(ctx)
	if err != nil {
		return status, fmt.Errorf("read last sync: %w", err)
	}

	metrics.SyncQueueDepth.WithLabelValues(string(models.OperationPending)).Set(float64(pending))
	metrics.SyncQueueDepth.WithLabelValues(string(models.OperationFailedPermanent)).Set(float64(failed))
	metrics.CachedTrips.Set(float64(cached))

	status.PendingSyncs = pending + failed
	status.FailedSyncs = failed
	status.CachedTrips = cached
	status.IsOnline = s.connectivity.IsOnline()
	status.LastSync = lastSync
	status.QuotaExceeded = s.quota.isExceeded()

	return status, nil
}

// SyncNow implements [OfflineService].
func (s *offlineService) SyncNow(ctx context.Context) (models.DrainResult, error) {
	return s.synchronizer.Drain(ctx)
}

// RetryFailed implements [OfflineService].
func (s *offlineService) RetryFailed(ctx context.Context) (int, error) {
	if err := s.quota.allow(ctx); err != nil {
		return 0, err
	}

	reset, err := s.store.ResetFailedPermanent(ctx)
	if err != nil {
		return 0, s.quota.observe(fmt.Errorf("reset failed operations: %w", err))
	}

	if reset > 0 {
		s.logger.Info().Int("operations", reset).Msg("permanently failed operations re-queued")
		s.triggerDrain(ctx)
	}
	return reset, nil
}

// ClearAll implements [OfflineService].
func (s *offlineService) ClearAll(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear local store: %w", err)
	}
	if s.responses != nil {
		if err := s.responses.Clear(ctx); err != nil {
			return fmt.Errorf("clear response cache: %w", err)
		}
	}

	s.quota.reset()
	s.logger.Info().Msg("offline data cleared")
	return nil
}

func (s *offlineService) validate(ctx context.Context, trip models.Trip) error {
	if err := s.validator.Validate(ctx, trip); err != nil {
		if strings.TrimSpace(trip.UserID) == "" {
			return fmt.Errorf("%w: %w", ErrNoUserID, err)
		}
		return fmt.Errorf("%w: %w", ErrInvalidTrip, err)
	}
	return nil
}

// triggerDrain starts a drain in the background when online. The drain
// outlives the request that caused it.
func (s *offlineService) triggerDrain(ctx context.Context) {
	if !s.connectivity.IsOnline() {
		return
	}

	drainCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.synchronizer.Drain(drainCtx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error().Err(err).Msg("background drain failed")
		}
	}()
}

// Wait blocks until every drain started by a mutation has returned.
func (s *offlineService) Wait() {
	s.wg.Wait()
}
