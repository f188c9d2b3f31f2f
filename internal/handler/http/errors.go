// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidJSON is returned for request bodies that cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrTripNotCached is returned by GET /offline/trips/{tripID} when the
	// trip has no snapshot in the local store.
	ErrTripNotCached = errors.New("trip is not cached")

	// ErrInvalidNeedsSync is returned when the needs_sync query parameter is
	// not a boolean.
	ErrInvalidNeedsSync = errors.New("needs_sync must be a boolean")
)
