// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package interceptor

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/wanderlust-offline/internal/adapter"
	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/mock"
	"github.com/MKhiriev/wanderlust-offline/internal/store"
	"github.com/MKhiriev/wanderlust-offline/models"
)

// site is a fake WanderLust upstream that can be taken offline.
type site struct {
	srv  *httptest.Server
	hits atomic.Int32
}

func newSite(t *testing.T) *site {
	t.Helper()
	s := &site{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /listings/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Set-Cookie", "session=abc")
		_, _ = io.WriteString(w, "<h1>trip "+r.PathValue("id")+"</h1>")
	})
	mux.HandleFunc("GET /listings", func(w http.ResponseWriter, _ *http.Request) {
		s.hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<h1>all trips</h1>")
	})
	mux.HandleFunc("GET /api/trips", func(w http.ResponseWriter, _ *http.Request) {
		s.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"42"}]`)
	})
	mux.HandleFunc("GET /css/style.css", func(w http.ResponseWriter, _ *http.Request) {
		s.hits.Add(1)
		w.Header().Set("Content-Type", "text/css")
		_, _ = io.WriteString(w, "body{}")
	})
	mux.HandleFunc("GET /broken", func(w http.ResponseWriter, _ *http.Request) {
		s.hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("POST /listings", func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	})

	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func (s *site) goOffline() {
	s.srv.Close()
}

func newTestInterceptor(t *testing.T, baseURL string) (*Interceptor, store.ResponseCache) {
	t.Helper()
	log := logger.Nop()

	cache, err := store.NewBadgerResponseCache(config.ClientCache{InMemory: true}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	fetcher, err := adapter.NewHTTPPageFetcher(config.ClientAdapter{BaseURL: baseURL, RequestTimeout: time.Second}, log)
	require.NoError(t, err)

	i, err := New(cache, fetcher, config.ClientInterceptor{}, log)
	require.NoError(t, err)
	return i, cache
}

func page(target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.Header.Set("Accept", "text/html")
	return r
}

func serve(i *Interceptor, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	i.ServeHTTP(rec, r)
	return rec
}

// ── route policies ──────────────────────────────────────────────────────────

func TestTripDetail_OfflineServesCachedCopy(t *testing.T) {
	s := newSite(t)
	i, _ := newTestInterceptor(t, s.srv.URL)

	online := serve(i, page("/listings/42"))
	require.Equal(t, http.StatusOK, online.Code)
	assert.Equal(t, "network", online.Header().Get(SourceHeader))
	assert.Equal(t, "session=abc", online.Header().Get("Set-Cookie"), "live responses keep their cookies")

	s.goOffline()

	offline := serve(i, page("/listings/42"))
	assert.Equal(t, http.StatusOK, offline.Code)
	assert.Equal(t, "cache", offline.Header().Get(SourceHeader))
	assert.Equal(t, "<h1>trip 42</h1>", offline.Body.String())
	assert.Empty(t, offline.Header().Get("Set-Cookie"), "cached copies never replay cookies")
}

func TestTripDetail_OfflineWithoutCacheRedirectsToList(t *testing.T) {
	s := newSite(t)
	i, _ := newTestInterceptor(t, s.srv.URL)
	s.goOffline()

	rec := serve(i, page("/listings/99"))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/listings", rec.Header().Get("Location"))
	assert.Equal(t, "redirect", rec.Header().Get(SourceHeader))
}

func TestNavigation_OfflineWithoutCacheServesOfflinePage(t *testing.T) {
	s := newSite(t)
	i, _ := newTestInterceptor(t, s.srv.URL)
	s.goOffline()

	rec := serve(i, page("/listings"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "offline-page", rec.Header().Get(SourceHeader))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "You are offline")
}

func TestNavigation_OfflineServesExactCachedRequest(t *testing.T) {
	s := newSite(t)
	i, _ := newTestInterceptor(t, s.srv.URL)

	require.Equal(t, http.StatusOK, serve(i, page("/listings")).Code)
	s.goOffline()

	cached := serve(i, page("/listings"))
	assert.Equal(t, "cache", cached.Header().Get(SourceHeader))
	assert.Equal(t, "<h1>all trips</h1>", cached.Body.String())

	// a different query string is a different request
	other := serve(i, page("/listings?category=beach"))
	assert.Equal(t, "offline-page", other.Header().Get(SourceHeader))
}

func TestNavigation_ServerErrorFallsBack(t *testing.T) {
	s := newSite(t)
	i, _ := newTestInterceptor(t, s.srv.URL)

	rec := serve(i, page("/broken"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "offline-page", rec.Header().Get(SourceHeader))
}

func TestNavigation_NotFoundIsServedAndNotCached(t *testing.T) {
	s := newSite(t)
	i, cache := newTestInterceptor(t, s.srv.URL)

	rec := serve(i, page("/nowhere"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "network", rec.Header().Get(SourceHeader))

	cached, err := cache.Get(t.Context(), "GET /nowhere")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestAPIRead_WriteThroughThenCache(t *testing.T) {
	s := newSite(t)
	i, cache := newTestInterceptor(t, s.srv.URL)

	r := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	res, err := i.Handle(r)
	require.NoError(t, err)
	assert.Equal(t, models.RouteAPIRead, res.Class)
	assert.Equal(t, models.SourceNetwork, res.Source)

	stored, err := cache.Get(t.Context(), "GET /api/trips")
	require.NoError(t, err)
	require.NotNil(t, stored, "persisted before being returned")
	assert.JSONEq(t, `[{"id":"42"}]`, string(stored.Body))

	s.goOffline()
	rec := serve(i, httptest.NewRequest(http.MethodGet, "/api/trips", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cache", rec.Header().Get(SourceHeader))
}

func TestAPIRead_NothingCachedIsGatewayTimeout(t *testing.T) {
	s := newSite(t)
	i, _ := newTestInterceptor(t, s.srv.URL)
	s.goOffline()

	_, err := i.Handle(httptest.NewRequest(http.MethodGet, "/api/trips", nil))
	assert.ErrorIs(t, err, ErrNoCachedResponse)

	rec := serve(i, httptest.NewRequest(http.MethodGet, "/api/trips", nil))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestStaticAsset_CacheFirst(t *testing.T) {
	s := newSite(t)
	i, _ := newTestInterceptor(t, s.srv.URL)

	first := serve(i, httptest.NewRequest(http.MethodGet, "/css/style.css", nil))
	assert.Equal(t, "network", first.Header().Get(SourceHeader))

	second := serve(i, httptest.NewRequest(http.MethodGet, "/css/style.css", nil))
	assert.Equal(t, "cache", second.Header().Get(SourceHeader))
	assert.Equal(t, "body{}", second.Body.String())
	assert.Equal(t, int32(1), s.hits.Load(), "cached assets are not refetched")
}

func TestStaticAsset_MissWhileOffline(t *testing.T) {
	s := newSite(t)
	i, _ := newTestInterceptor(t, s.srv.URL)
	s.goOffline()

	_, err := i.Handle(httptest.NewRequest(http.MethodGet, "/img/logo.png", nil))
	assert.ErrorIs(t, err, ErrNoCachedResponse)
}

func TestPassthrough_NeverCached(t *testing.T) {
	s := newSite(t)
	i, cache := newTestInterceptor(t, s.srv.URL)

	r := httptest.NewRequest(http.MethodPost, "/listings", strings.NewReader(`{"title":"Bali"}`))
	rec := serve(i, r)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"title":"Bali"}`, rec.Body.String())

	cached, err := cache.Get(t.Context(), "POST /listings")
	require.NoError(t, err)
	assert.Nil(t, cached)

	s.goOffline()
	offline := serve(i, httptest.NewRequest(http.MethodPost, "/listings", http.NoBody))
	assert.Equal(t, http.StatusBadGateway, offline.Code)
}

// ── failure handling with a mocked upstream ─────────────────────────────────

func TestNetworkFirst_CacheWriteFailureStillServes(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockResponseCache(ctrl)
	fetcher := mock.NewMockPageFetcher(ctrl)

	i, err := New(cache, fetcher, config.ClientInterceptor{}, logger.Nop())
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	fetcher.EXPECT().Fetch(gomock.Any(), r).Return(&models.CachedResponse{StatusCode: http.StatusOK, Body: []byte(`[]`)}, nil)
	cache.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, resp models.CachedResponse) error {
		assert.Equal(t, "GET /api/trips", resp.Key)
		return store.ErrStorageQuotaExceeded
	})

	res, err := i.Handle(r)
	require.NoError(t, err)
	assert.Equal(t, models.SourceNetwork, res.Source)
}

func TestNetworkFirst_ServerErrorUsesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockResponseCache(ctrl)
	fetcher := mock.NewMockPageFetcher(ctrl)

	i, err := New(cache, fetcher, config.ClientInterceptor{}, logger.Nop())
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/trips/42", nil)
	fetcher.EXPECT().Fetch(gomock.Any(), r).Return(&models.CachedResponse{StatusCode: http.StatusBadGateway}, nil)
	cache.EXPECT().Get(gomock.Any(), "GET /api/trips/42").
		Return(&models.CachedResponse{Key: "GET /api/trips/42", StatusCode: http.StatusOK, Body: []byte(`{"id":"42"}`)}, nil)

	res, err := i.Handle(r)
	require.NoError(t, err)
	assert.Equal(t, models.RouteTripDetail, res.Class)
	assert.Equal(t, models.SourceCache, res.Source)
}

func TestStaticAsset_CacheReadErrorFetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockResponseCache(ctrl)
	fetcher := mock.NewMockPageFetcher(ctrl)

	i, err := New(cache, fetcher, config.ClientInterceptor{}, logger.Nop())
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/app.js", nil)
	cache.EXPECT().Get(gomock.Any(), "GET /app.js").Return(nil, errors.New("badger: closed"))
	fetcher.EXPECT().Fetch(gomock.Any(), r).Return(&models.CachedResponse{StatusCode: http.StatusOK, Body: []byte("x")}, nil)
	cache.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	res, err := i.Handle(r)
	require.NoError(t, err)
	assert.Equal(t, models.SourceNetwork, res.Source)
}

func TestNew_CustomOfflinePage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>custom</p>"), 0o600))

	ctrl := gomock.NewController(t)
	fetcher := mock.NewMockPageFetcher(ctrl)
	cache := mock.NewMockResponseCache(ctrl)

	i, err := New(cache, fetcher, config.ClientInterceptor{OfflinePagePath: path}, logger.Nop())
	require.NoError(t, err)

	r := page("/about")
	fetcher.EXPECT().Fetch(gomock.Any(), r).Return(nil, adapter.ErrRemoteFailure)
	cache.EXPECT().Get(gomock.Any(), "GET /about").Return(nil, nil)

	rec := serve(i, r)
	assert.Equal(t, "<p>custom</p>", rec.Body.String())

	_, err = New(cache, fetcher, config.ClientInterceptor{OfflinePagePath: filepath.Join(t.TempDir(), "missing.html")}, logger.Nop())
	assert.Error(t, err)
}
