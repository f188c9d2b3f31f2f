// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package interceptor is the network interception layer of the offline
// client. Every request that is not part of the offline JSON API is
// classified into a route class and served from the network, the response
// cache, or a fallback, according to the policy of that class:
//
//   - navigation: network first, then the cached copy of the exact request,
//     then the offline page (503).
//   - trip_detail: network first with write-through, then the cached detail,
//     then a 302 redirect to the trip list.
//   - api_read: network first with write-through, then the cache. No
//     generated fallback.
//   - static_asset: cache first, then the network with write-through.
//   - passthrough: network only, never cached.
//
// Only 2xx network responses are stored, and they are stored before being
// returned. A 5xx from upstream is a network failure for fallback purposes.
package interceptor
