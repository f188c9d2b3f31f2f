// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package interceptor

import (
	"net/http"
	"path"
	"strings"

	"github.com/MKhiriev/wanderlust-offline/models"
)

var staticExtensions = map[string]struct{}{
	".js": {}, ".mjs": {}, ".css": {}, ".map": {},
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".webp": {}, ".avif": {}, ".ico": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".otf": {}, ".eot": {},
}

// listing sub-pages that are forms, not trip details
var nonDetailSegments = map[string]struct{}{
	"new": {},
}

// Classify returns the route class of r. Classes are checked in order:
// navigation, trip_detail, api_read, static_asset. Anything else, including
// every non-GET request, is passthrough.
func (i *Interceptor) Classify(r *http.Request) models.RouteClass {
	if r.Method != http.MethodGet {
		return models.RoutePassthrough
	}

	detail := i.isTripDetailPath(r.URL.Path)

	switch {
	case isNavigation(r) && !detail:
		return models.RouteNavigation
	case detail:
		return models.RouteTripDetail
	case strings.HasPrefix(r.URL.Path, i.cfg.APIPrefix):
		return models.RouteAPIRead
	case isStaticAsset(r.URL.Path):
		return models.RouteStaticAsset
	}
	return models.RoutePassthrough
}

func isNavigation(r *http.Request) bool {
	if r.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// isTripDetailPath matches "<list>/{id}" and "<api>trips/{id}" with exactly
// one non-empty id segment.
func (i *Interceptor) isTripDetailPath(p string) bool {
	for _, prefix := range i.detailPrefixes {
		rest, ok := strings.CutPrefix(p, prefix)
		if !ok {
			continue
		}
		rest = strings.TrimSuffix(rest, "/")
		if rest == "" || strings.Contains(rest, "/") {
			return false
		}
		_, form := nonDetailSegments[rest]
		return !form
	}
	return false
}

func isStaticAsset(p string) bool {
	_, ok := staticExtensions[strings.ToLower(path.Ext(p))]
	return ok
}
