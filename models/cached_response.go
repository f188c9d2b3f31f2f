// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"net/http"
	"time"
)

// CachedResponse is an HTTP response stored by the interception layer.
type CachedResponse struct {
	Key        string      `json:"key"`
	StatusCode int         `json:"status_code"`
	Header     http.Header `json:"header"`
	Body       []byte      `json:"body"`
	StoredAt   time.Time   `json:"stored_at"`
}

// RouteClass selects the serving policy for an intercepted request.
type RouteClass string

const (
	RouteNavigation  RouteClass = "navigation"
	RouteTripDetail  RouteClass = "trip_detail"
	RouteAPIRead     RouteClass = "api_read"
	RouteStaticAsset RouteClass = "static_asset"
	RoutePassthrough RouteClass = "passthrough"
)

// ResponseSource tells where an intercepted response came from. It is sent
// back in the X-Offline-Source header.
type ResponseSource string

const (
	SourceNetwork     ResponseSource = "network"
	SourceCache       ResponseSource = "cache"
	SourceOfflinePage ResponseSource = "offline-page"
	SourceRedirect    ResponseSource = "redirect"
)
