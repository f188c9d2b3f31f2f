// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/metrics"
	"github.com/MKhiriev/wanderlust-offline/models"
	gobreaker "github.com/sony/gobreaker/v2"
)

const tripAPIBreakerName = "trip-api"

// breakerTripAPI guards a TripAPI with a circuit breaker. The breaker opens
// after BreakerFailures consecutive transport or 5xx failures and lets a
// single trial request through after BreakerTimeout.
type breakerTripAPI struct {
	api  TripAPI
	cb   *gobreaker.CircuitBreaker[any]
	name string

	logger *logger.Logger
}

// NewBreakerTripAPI wraps api. While the circuit is open every call fails
// fast with an error wrapping both [ErrCircuitOpen] and [ErrRemoteFailure].
func NewBreakerTripAPI(api TripAPI, cfg config.ClientAdapter, log *logger.Logger) TripAPI {
	b := &breakerTripAPI{api: api, name: tripAPIBreakerName, logger: log}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = config.DefaultBreakerFailures
	}

	metrics.CircuitBreakerState.WithLabelValues(b.name).Set(0)

	b.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        b.name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isClientError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})

	return b
}

func (b *breakerTripAPI) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			b.logger.Debug().Err(err).Str("breaker", b.name).Msg("request rejected by circuit breaker")
			return nil, fmt.Errorf("%w: %w: %w", ErrRemoteFailure, ErrCircuitOpen, err)
		}

		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

// State returns the current breaker state name.
func (b *breakerTripAPI) State() string {
	return stateToString(b.cb.State())
}

// CreateTrip implements [TripAPI].
func (b *breakerTripAPI) CreateTrip(ctx context.Context, trip models.Trip) (models.Trip, error) {
	result, err := b.execute(func() (any, error) {
		return b.api.CreateTrip(ctx, trip)
	})
	if err != nil {
		return trip, err
	}

	created, ok := result.(models.Trip)
	if !ok {
		return trip, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return created, nil
}

// UpdateTrip implements [TripAPI].
func (b *breakerTripAPI) UpdateTrip(ctx context.Context, tripID string, payload []byte) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.api.UpdateTrip(ctx, tripID, payload)
	})
	return err
}

// DeleteTrip implements [TripAPI].
func (b *breakerTripAPI) DeleteTrip(ctx context.Context, tripID string) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.api.DeleteTrip(ctx, tripID)
	})
	return err
}

// Ping implements [TripAPI]. Health checks bypass the breaker.
func (b *breakerTripAPI) Ping(ctx context.Context) error {
	return b.api.Ping(ctx)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
