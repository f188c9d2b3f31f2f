// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTripAPI struct {
	err   error
	calls int
	pings int
}

func (f *fakeTripAPI) CreateTrip(_ context.Context, trip models.Trip) (models.Trip, error) {
	f.calls++
	if f.err != nil {
		return models.Trip{}, f.err
	}
	trip.ID = "srv-1"
	return trip, nil
}

func (f *fakeTripAPI) UpdateTrip(context.Context, string, []byte) error {
	f.calls++
	return f.err
}

func (f *fakeTripAPI) DeleteTrip(context.Context, string) error {
	f.calls++
	return f.err
}

func (f *fakeTripAPI) Ping(context.Context) error {
	f.pings++
	return f.err
}

func newTestBreaker(api TripAPI) *breakerTripAPI {
	cfg := config.ClientAdapter{BreakerFailures: 2, BreakerTimeout: time.Hour}
	return NewBreakerTripAPI(api, cfg, logger.Nop()).(*breakerTripAPI)
}

func TestBreaker_PassesThroughResult(t *testing.T) {
	b := newTestBreaker(&fakeTripAPI{})

	got, err := b.CreateTrip(context.Background(), models.Trip{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", got.ID)
	assert.Equal(t, "closed", b.State())
}

func TestBreaker_OpensAfterConsecutiveServerFailures(t *testing.T) {
	api := &fakeTripAPI{err: fmt.Errorf("%w: %w", ErrRemoteFailure, ErrInternalServerError)}
	b := newTestBreaker(api)

	assert.ErrorIs(t, b.UpdateTrip(context.Background(), "t1", nil), ErrInternalServerError)
	assert.ErrorIs(t, b.DeleteTrip(context.Background(), "t1"), ErrInternalServerError)
	assert.Equal(t, "open", b.State())

	err := b.UpdateTrip(context.Background(), "t1", nil)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.ErrorIs(t, err, ErrRemoteFailure)
	assert.Equal(t, 2, api.calls, "open breaker must not reach the remote")
}

func TestBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	api := &fakeTripAPI{err: fmt.Errorf("%w: %w", ErrRemoteFailure, ErrConflict)}
	b := newTestBreaker(api)

	for range 5 {
		assert.ErrorIs(t, b.UpdateTrip(context.Background(), "t1", nil), ErrConflict)
	}
	assert.Equal(t, "closed", b.State())
	assert.Equal(t, 5, api.calls)
}

func TestBreaker_PingBypassesOpenCircuit(t *testing.T) {
	api := &fakeTripAPI{err: fmt.Errorf("%w: boom", ErrRemoteFailure)}
	b := newTestBreaker(api)

	_ = b.UpdateTrip(context.Background(), "t1", nil)
	_ = b.UpdateTrip(context.Background(), "t1", nil)
	require.Equal(t, "open", b.State())

	api.err = nil
	assert.NoError(t, b.Ping(context.Background()))
	assert.Equal(t, 1, api.pings)
}
