// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the WanderLust server.
//
// [TripAPI] is the remote trip API used by the synchronizer to replay queued
// mutations. [PageFetcher] forwards intercepted browser requests to the same
// origin. Both are backed by resty; [NewBreakerTripAPI] puts a circuit breaker
// in front of a [TripAPI].
//
// Non-2xx responses are mapped by mapHTTPError to the sentinels in errors.go,
// all of which wrap [ErrRemoteFailure], so callers can use [errors.Is] both
// for the precise cause (e.g. [ErrConflict] for 409) and for "any remote
// failure".
package adapter

import (
	"context"
	"net/http"

	"github.com/MKhiriev/wanderlust-offline/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// TripAPI replays trip mutations against the remote server.
type TripAPI interface {
	// CreateTrip POSTs trip to /api/trips and returns the server's copy,
	// which carries the server-assigned id.
	CreateTrip(ctx context.Context, trip models.Trip) (models.Trip, error)

	// UpdateTrip PUTs the full payload to /api/trips/{tripID}.
	UpdateTrip(ctx context.Context, tripID string, payload []byte) error

	// DeleteTrip sends DELETE /api/trips/{tripID}.
	DeleteTrip(ctx context.Context, tripID string) error

	// Ping calls GET /api/health. A nil error means the server is reachable.
	Ping(ctx context.Context) error
}

// PageFetcher forwards an intercepted request upstream.
//
// Fetch returns an error only when no response was received at all. Any
// HTTP status, including 5xx, comes back as a response so the caller can
// decide whether it counts as a failure.
type PageFetcher interface {
	Fetch(ctx context.Context, r *http.Request) (*models.CachedResponse, error)
}
