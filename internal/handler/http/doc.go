// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http is the local HTTP surface of the offline client.
//
// Routes under /offline are the JSON API used by the WanderLust front end to
// cache trips and record changes made while offline. /metrics serves the
// Prometheus collectors. Every other request is handed to the network
// interception layer, which proxies the WanderLust site and falls back to
// cached responses when it is unreachable.
package http
