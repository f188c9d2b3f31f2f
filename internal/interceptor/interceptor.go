// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package interceptor

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/MKhiriev/wanderlust-offline/internal/adapter"
	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/metrics"
	"github.com/MKhiriev/wanderlust-offline/internal/store"
	"github.com/MKhiriev/wanderlust-offline/models"
)

// SourceHeader tells the browser where a response came from.
const SourceHeader = "X-Offline-Source"

//go:embed offline.html
var defaultOfflinePage []byte

// Result is a response chosen by the interception layer.
type Result struct {
	Class    models.RouteClass
	Source   models.ResponseSource
	Response *models.CachedResponse
}

// Interceptor serves intercepted requests from the network or the cache.
type Interceptor struct {
	cache   store.ResponseCache
	fetcher adapter.PageFetcher
	cfg     config.ClientInterceptor

	detailPrefixes []string
	offlinePage    []byte
	now            func() time.Time

	logger *logger.Logger
}

// New creates an Interceptor. When cfg.OfflinePagePath is set the offline
// page is read from that file, otherwise the built-in page is used.
func New(cache store.ResponseCache, fetcher adapter.PageFetcher, cfg config.ClientInterceptor, log *logger.Logger) (*Interceptor, error) {
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = config.DefaultAPIPrefix
	}
	if cfg.TripListPath == "" {
		cfg.TripListPath = config.DefaultTripListPath
	}

	page := defaultOfflinePage
	if cfg.OfflinePagePath != "" {
		custom, err := os.ReadFile(cfg.OfflinePagePath)
		if err != nil {
			return nil, fmt.Errorf("read offline page: %w", err)
		}
		page = custom
	}

	listPrefix := strings.TrimSuffix(cfg.TripListPath, "/") + "/"
	apiPrefix := strings.TrimSuffix(cfg.APIPrefix, "/") + "/trips/"

	return &Interceptor{
		cache:          cache,
		fetcher:        fetcher,
		cfg:            cfg,
		detailPrefixes: []string{listPrefix, apiPrefix},
		offlinePage:    page,
		now:            time.Now,
		logger:         log,
	}, nil
}

// Handle classifies r and applies the policy of its route class.
//
// It returns [ErrNoCachedResponse] when an api_read or static_asset request
// could be served neither from the network nor from the cache, and
// [ErrUpstreamUnavailable] when a passthrough request failed.
func (i *Interceptor) Handle(r *http.Request) (Result, error) {
	class := i.Classify(r)

	var (
		res Result
		err error
	)
	switch class {
	case models.RouteNavigation:
		res, err = i.networkFirst(r, func() Result { return i.offlineResult() })
	case models.RouteTripDetail:
		res, err = i.networkFirst(r, func() Result { return i.redirectResult() })
	case models.RouteAPIRead:
		res, err = i.networkFirst(r, nil)
	case models.RouteStaticAsset:
		res, err = i.cacheFirst(r)
	default:
		res, err = i.passthrough(r)
	}
	res.Class = class

	source := string(res.Source)
	if err != nil {
		source = "none"
	}
	metrics.InterceptedRequests.WithLabelValues(string(class), source).Inc()

	return res, err
}

// ServeHTTP implements [http.Handler].
func (i *Interceptor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := i.Handle(r)
	if err != nil {
		log := logger.FromRequest(r)
		switch {
		case errors.Is(err, ErrNoCachedResponse):
			w.WriteHeader(http.StatusGatewayTimeout)
		default:
			log.Err(err).Str("func", "*Interceptor.ServeHTTP").Str("path", r.URL.Path).Msg("passthrough request failed")
			w.WriteHeader(http.StatusBadGateway)
		}
		return
	}

	header := w.Header()
	for name, values := range res.Response.Header {
		header[name] = append([]string(nil), values...)
	}
	header.Del("Content-Length")
	header.Set(SourceHeader, string(res.Source))

	w.WriteHeader(res.Response.StatusCode)
	if r.Method != http.MethodHead {
		_, _ = w.Write(res.Response.Body)
	}
}

func cacheKey(r *http.Request) string {
	return r.Method + " " + r.URL.RequestURI()
}

// fetch calls upstream. A 5xx response is reported as a failure.
func (i *Interceptor) fetch(r *http.Request) (*models.CachedResponse, error) {
	resp, err := i.fetcher.Fetch(r.Context(), r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: upstream status %d", adapter.ErrRemoteFailure, resp.StatusCode)
	}
	return resp, nil
}

// persist persists a 2xx response under the request key. Failures are logged
// and do not affect serving the response.
func (i *Interceptor) persist(r *http.Request, resp *models.CachedResponse) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return
	}

	stored := *resp
	stored.Key = cacheKey(r)
	stored.Header = resp.Header.Clone()
	stored.Header.Del("Set-Cookie")
	if stored.StoredAt.IsZero() {
		stored.StoredAt = i.now().UTC()
	}

	if err := i.cache.Put(r.Context(), stored); err != nil {
		logger.FromRequest(r).Warn().Err(err).Str("key", stored.Key).Msg("failed to cache response")
	}
}

func (i *Interceptor) lookup(r *http.Request) *models.CachedResponse {
	cached, err := i.cache.Get(r.Context(), cacheKey(r))
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Str("key", cacheKey(r)).Msg("failed to read cached response")
		return nil
	}
	return cached
}

// networkFirst tries upstream, then the cache, then fallback. A nil fallback
// yields ErrNoCachedResponse.
func (i *Interceptor) networkFirst(r *http.Request, fallback func() Result) (Result, error) {
	resp, err := i.fetch(r)
	if err == nil {
		i.persist(r, resp)
		return Result{Source: models.SourceNetwork, Response: resp}, nil
	}

	log := logger.FromRequest(r)
	log.Debug().Err(err).Str("path", r.URL.Path).Msg("network failed, trying cache")

	if cached := i.lookup(r); cached != nil {
		return Result{Source: models.SourceCache, Response: cached}, nil
	}
	if fallback == nil {
		return Result{}, ErrNoCachedResponse
	}
	return fallback(), nil
}

func (i *Interceptor) cacheFirst(r *http.Request) (Result, error) {
	if cached := i.lookup(r); cached != nil {
		return Result{Source: models.SourceCache, Response: cached}, nil
	}

	resp, err := i.fetch(r)
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("path", r.URL.Path).Msg("static asset unavailable")
		return Result{}, ErrNoCachedResponse
	}

	i.persist(r, resp)
	return Result{Source: models.SourceNetwork, Response: resp}, nil
}

func (i *Interceptor) passthrough(r *http.Request) (Result, error) {
	resp, err := i.fetcher.Fetch(r.Context(), r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	return Result{Source: models.SourceNetwork, Response: resp}, nil
}

func (i *Interceptor) offlineResult() Result {
	return Result{
		Source: models.SourceOfflinePage,
		Response: &models.CachedResponse{
			StatusCode: http.StatusServiceUnavailable,
			Header: http.Header{
				"Content-Type":  {"text/html; charset=utf-8"},
				"Cache-Control": {"no-store"},
			},
			Body:     i.offlinePage,
			StoredAt: i.now().UTC(),
		},
	}
}

func (i *Interceptor) redirectResult() Result {
	return Result{
		Source: models.SourceRedirect,
		Response: &models.CachedResponse{
			StatusCode: http.StatusFound,
			Header: http.Header{
				"Location":      {i.cfg.TripListPath},
				"Cache-Control": {"no-store"},
			},
			StoredAt: i.now().UTC(),
		},
	}
}
