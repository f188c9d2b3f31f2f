// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package interceptor

import "errors"

var (
	// ErrNoCachedResponse is returned when neither the network nor the cache
	// could serve a request and the route class has no generated fallback.
	ErrNoCachedResponse = errors.New("no cached response available")

	// ErrUpstreamUnavailable is returned for passthrough requests whose
	// upstream call failed at the transport level.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
