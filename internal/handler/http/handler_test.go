// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/wanderlust-offline/internal/app"
	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/mock"
	"github.com/MKhiriev/wanderlust-offline/internal/service"
	"github.com/MKhiriev/wanderlust-offline/internal/session"
	"github.com/MKhiriev/wanderlust-offline/internal/store"
	"github.com/MKhiriev/wanderlust-offline/models"
)

type testHandler struct {
	router   http.Handler
	offline  *mock.MockOfflineService
	sessions *session.Store
	proxied  []string
}

func newTestHandler(t *testing.T, app config.ClientApp) *testHandler {
	t.Helper()

	th := &testHandler{
		offline:  mock.NewMockOfflineService(gomock.NewController(t)),
		sessions: session.NewStore(16, time.Hour),
	}
	proxy := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		th.proxied = append(th.proxied, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	})

	h := NewHandler(th.offline, proxy, th.sessions, config.ClientServer{AllowedOrigins: []string{"http://localhost:3000"}}, app, logger.Nop())
	th.router = h.Init()
	return th
}

func (th *testHandler) do(method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	th.router.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub}).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return "Bearer " + token
}

// ── trips ───────────────────────────────────────────────────────────────────

func TestSaveTrip(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	th.offline.EXPECT().
		SaveTripForOffline(gomock.Any(), models.Trip{ID: "42", UserID: "u1", Payload: json.RawMessage(`{"title":"Kyoto"}`)}, "u1").
		Return(nil)

	rec := th.do(http.MethodPost, "/offline/trips", `{"id":"42","user_id":"u1","payload":{"title":"Kyoto"}}`, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(session.HeaderName))
}

func TestSaveTrip_ValidationErrors(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{UserID: "u1"})

	tests := []struct {
		name string
		body string
	}{
		{"broken json", `{"id":`},
		{"missing id", `{"payload":{}}`},
		{"missing payload", `{"id":"42"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := th.do(http.MethodPost, "/offline/trips", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestListTrips_UserFromBearerToken(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	th.offline.EXPECT().GetOfflineTrips(gomock.Any(), "u-jwt").Return(nil, nil)

	rec := th.do(http.MethodGet, "/offline/trips", "", map[string]string{"Authorization": bearer(t, "u-jwt")})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListTrips_UserFromSession(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})
	th.sessions.Put("s-1", session.Context{UserID: "u-session"})

	th.offline.EXPECT().GetOfflineTrips(gomock.Any(), "u-session").
		Return([]models.CachedTrip{{TripID: "42", UserID: "u-session", Payload: json.RawMessage(`{}`)}}, nil)

	rec := th.do(http.MethodGet, "/offline/trips", "", map[string]string{session.HeaderName: "s-1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var trips []models.CachedTrip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trips))
	require.Len(t, trips, 1)
	assert.Equal(t, "42", trips[0].TripID)
}

func TestListTrips_ExplicitUserIsRememberedInSession(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	th.offline.EXPECT().GetOfflineTrips(gomock.Any(), "u1").Return(nil, nil).Times(2)

	first := th.do(http.MethodGet, "/offline/trips?user_id=u1", "", nil)
	require.Equal(t, http.StatusOK, first.Code)
	cookie := first.Result().Cookies()
	require.Len(t, cookie, 1)
	assert.Equal(t, session.CookieName, cookie[0].Name)

	second := th.do(http.MethodGet, "/offline/trips", "", map[string]string{"Cookie": cookie[0].Name + "=" + cookie[0].Value})
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestListTrips_NoUser(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	rec := th.do(http.MethodGet, "/offline/trips", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTrip(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	th.offline.EXPECT().GetOfflineTrip(gomock.Any(), "42").
		Return(&models.CachedTrip{TripID: "42", UserID: "u1", Payload: json.RawMessage(`{"title":"Kyoto"}`), IsSynced: true}, nil)
	th.offline.EXPECT().GetOfflineTrip(gomock.Any(), "7").Return(nil, nil)

	rec := th.do(http.MethodGet, "/offline/trips/42", "", map[string]string{session.HeaderName: "s-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_synced":true`)

	sc, ok := th.sessions.Get("s-1")
	require.True(t, ok)
	assert.Equal(t, "42", sc.LastTripID)

	missing := th.do(http.MethodGet, "/offline/trips/7", "", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestCreateTrip(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{UserID: "u-default"})

	th.offline.EXPECT().
		RecordCreate(gomock.Any(), models.Trip{UserID: "u-default", Payload: json.RawMessage(`{"destination":"Paris"}`)}).
		Return(models.SyncOperation{ID: 3, Type: models.OperationCreate, Status: models.OperationPending}, nil)

	rec := th.do(http.MethodPost, "/offline/trips/create", `{"payload":{"destination":"Paris"}}`, nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":3`)
}

func TestUpdateTrip(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	th.offline.EXPECT().RecordUpdate(gomock.Any(), models.Trip{ID: "42", UserID: "u1", Payload: json.RawMessage(`{"name":"A"}`)}, true).Return(nil)
	th.offline.EXPECT().RecordUpdate(gomock.Any(), models.Trip{ID: "42", UserID: "u1", Payload: json.RawMessage(`{"name":"B"}`)}, false).Return(nil)

	assert.Equal(t, http.StatusAccepted, th.do(http.MethodPut, "/offline/trips/42", `{"user_id":"u1","payload":{"name":"A"}}`, nil).Code)
	assert.Equal(t, http.StatusAccepted, th.do(http.MethodPut, "/offline/trips/42", `{"user_id":"u1","payload":{"name":"B"},"needs_sync":false}`, nil).Code)
}

func TestUpdateTrip_QuotaExceeded(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	quotaErr := errorsJoin(store.ErrStorageQuotaExceeded, store.ErrExecutingStatement)
	th.offline.EXPECT().RecordUpdate(gomock.Any(), gomock.Any(), true).Return(quotaErr)

	rec := th.do(http.MethodPut, "/offline/trips/42", `{"user_id":"u1","payload":{}}`, nil)
	assert.Equal(t, http.StatusInsufficientStorage, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgStorageQuotaExceeded)
}

func TestDeleteTrip(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	th.offline.EXPECT().RecordDelete(gomock.Any(), "42", "u1", true).Return(nil)
	th.offline.EXPECT().RecordDelete(gomock.Any(), "43", "", false).Return(nil)

	assert.Equal(t, http.StatusAccepted, th.do(http.MethodDelete, "/offline/trips/42?user_id=u1", "", nil).Code)
	assert.Equal(t, http.StatusAccepted, th.do(http.MethodDelete, "/offline/trips/43?needs_sync=false", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, th.do(http.MethodDelete, "/offline/trips/44?needs_sync=maybe", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, th.do(http.MethodDelete, "/offline/trips/45", "", nil).Code, "a synced delete needs a user")
}

// ── sync status and maintenance ─────────────────────────────────────────────

func TestSyncEndpoints(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	th.offline.EXPECT().GetSyncStatus(gomock.Any()).Return(models.SyncStatus{PendingSyncs: 2, FailedSyncs: 1, IsOnline: true}, nil)
	th.offline.EXPECT().SyncNow(gomock.Any()).Return(models.DrainResult{Attempted: 2, Succeeded: 2}, nil)
	th.offline.EXPECT().RetryFailed(gomock.Any()).Return(1, nil)

	status := th.do(http.MethodGet, "/offline/status", "", nil)
	require.Equal(t, http.StatusOK, status.Code)
	assert.Contains(t, status.Body.String(), `"pending_syncs":2`)
	assert.Contains(t, status.Body.String(), `"failed_syncs":1`)

	drain := th.do(http.MethodPost, "/offline/sync", "", nil)
	require.Equal(t, http.StatusOK, drain.Code)
	assert.Contains(t, drain.Body.String(), `"succeeded":2`)

	retry := th.do(http.MethodPost, "/offline/retry", "", nil)
	require.Equal(t, http.StatusOK, retry.Code)
	assert.JSONEq(t, `{"reset":1}`, retry.Body.String())
}

func TestClearAll_ForgetsSession(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})
	th.sessions.Put("s-1", session.Context{UserID: "u1"})

	th.offline.EXPECT().ClearAll(gomock.Any()).Return(nil)

	rec := th.do(http.MethodPost, "/offline/clear", "", map[string]string{session.HeaderName: "s-1"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, th.sessions.Len())
}

func TestServiceErrorStatus(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	th.offline.EXPECT().GetSyncStatus(gomock.Any()).Return(models.SyncStatus{}, store.ErrScanningRow)

	rec := th.do(http.MethodGet, "/offline/status", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgInternalServerError)
	assert.NotContains(t, rec.Body.String(), "failed to scan")
}

// ── routing ─────────────────────────────────────────────────────────────────

func TestRouting_EverythingElseIsIntercepted(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	assert.Equal(t, http.StatusTeapot, th.do(http.MethodGet, "/listings/42", "", nil).Code)
	assert.Equal(t, http.StatusTeapot, th.do(http.MethodPost, "/listings", `{}`, nil).Code)
	assert.Equal(t, http.StatusTeapot, th.do(http.MethodGet, "/", "", nil).Code)
	assert.Equal(t, []string{"GET /listings/42", "POST /listings", "GET /"}, th.proxied)
}

func TestRouting_UnknownOfflinePathIsNotProxied(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	assert.Equal(t, http.StatusNotFound, th.do(http.MethodGet, "/offline/unknown", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, th.do(http.MethodPatch, "/offline/status", "", nil).Code)
	assert.Empty(t, th.proxied)
}

func TestRouting_Metrics(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	rec := th.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouting_CORSPreflight(t *testing.T) {
	th := newTestHandler(t, config.ClientApp{})

	rec := th.do(http.MethodOptions, "/offline/status", "", map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": http.MethodGet,
	})
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrNoUserID, http.StatusBadRequest},
		{ErrTripNotCached, http.StatusNotFound},
		{errorsJoin(store.ErrStorageQuotaExceeded, store.ErrExecutingStatement), http.StatusInsufficientStorage},
		{store.ErrExecutingQuery, http.StatusInternalServerError},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func errorsJoin(outer, inner error) error {
	return fmt.Errorf("%w: %w: disk full", outer, inner)
}
