// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/utils"
	"github.com/MKhiriev/wanderlust-offline/models"
	"github.com/go-resty/resty/v2"
)

const (
	tripsPath  = "/api/trips"
	healthPath = "/api/health"
)

type httpTripAPI struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPTripAPI constructs the REST implementation of [TripAPI]. The bearer
// token from appCfg is attached to every request when set.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed.
func NewHTTPTripAPI(adapterCfg config.ClientAdapter, appCfg config.ClientApp, log *logger.Logger) (TripAPI, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	return &httpTripAPI{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		token:  strings.TrimSpace(appCfg.APIToken),
		logger: log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// CreateTrip implements [TripAPI]. An empty 2xx body is accepted and the
// input trip is returned unchanged.
func (h *httpTripAPI) CreateTrip(ctx context.Context, trip models.Trip) (models.Trip, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody([]byte(trip.Payload)).
		Post(tripsPath)
	if err != nil {
		return trip, fmt.Errorf("%w: create trip request: %w", ErrRemoteFailure, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return trip, err
	}

	if len(resp.Body()) == 0 {
		return trip, nil
	}

	created := models.Trip{UserID: trip.UserID, Payload: json.RawMessage(resp.Body())}
	var envelope struct {
		ID json.RawMessage `json:"id"`
	}
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return trip, fmt.Errorf("decode create trip response: %w", err)
	}
	created.ID = rawID(envelope.ID)

	h.logger.Debug().Str("trip_id", created.ID).Msg("trip created on server")
	return created, nil
}

// rawID accepts both string and numeric ids.
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// UpdateTrip implements [TripAPI].
func (h *httpTripAPI) UpdateTrip(ctx context.Context, tripID string, payload []byte) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Put(tripsPath + "/" + url.PathEscape(tripID))
	if err != nil {
		return fmt.Errorf("%w: update trip request: %w", ErrRemoteFailure, err)
	}

	return mapHTTPError(resp)
}

// DeleteTrip implements [TripAPI].
func (h *httpTripAPI) DeleteTrip(ctx context.Context, tripID string) error {
	resp, err := h.authedRequest(ctx).Delete(tripsPath + "/" + url.PathEscape(tripID))
	if err != nil {
		return fmt.Errorf("%w: delete trip request: %w", ErrRemoteFailure, err)
	}

	return mapHTTPError(resp)
}

// Ping implements [TripAPI].
func (h *httpTripAPI) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(healthPath)
	if err != nil {
		return fmt.Errorf("%w: health request: %w", ErrRemoteFailure, err)
	}

	return mapHTTPError(resp)
}

func (h *httpTripAPI) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	return req
}

// forwardedHeaders are copied from the intercepted request to the upstream
// one. Everything else stays local.
var forwardedHeaders = []string{
	"Accept",
	"Accept-Language",
	"Authorization",
	"Content-Type",
	"Cookie",
	"If-None-Match",
	"If-Modified-Since",
	"User-Agent",
}

// hopHeaders are dropped from upstream responses before they are cached.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
	"Content-Length",
}

type httpPageFetcher struct {
	client *utils.HTTPClient
	now    func() time.Time

	logger *logger.Logger
}

// NewHTTPPageFetcher constructs a [PageFetcher] that forwards requests to
// adapterCfg.BaseURL.
func NewHTTPPageFetcher(adapterCfg config.ClientAdapter, log *logger.Logger) (PageFetcher, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	return &httpPageFetcher{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		now:    time.Now,
		logger: log,
	}, nil
}

// Fetch implements [PageFetcher].
func (f *httpPageFetcher) Fetch(ctx context.Context, r *http.Request) (*models.CachedResponse, error) {
	req := f.client.R().SetContext(ctx)
	for _, name := range forwardedHeaders {
		if values := r.Header.Values(name); len(values) > 0 {
			req.SetHeaderMultiValues(map[string][]string{name: values})
		}
	}

	if r.Body != nil && r.Method != http.MethodGet && r.Method != http.MethodHead {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		req.SetBody(body)
	}

	resp, err := req.Execute(r.Method, r.URL.RequestURI())
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s %s: %w", ErrRemoteFailure, r.Method, r.URL.Path, err)
	}

	header := resp.Header().Clone()
	for _, name := range hopHeaders {
		header.Del(name)
	}

	f.logger.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", resp.StatusCode()).
		Msg("upstream response")

	return &models.CachedResponse{
		StatusCode: resp.StatusCode(),
		Header:     header,
		Body:       resp.Body(),
		StoredAt:   f.now().UTC(),
	}, nil
}
