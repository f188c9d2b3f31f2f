// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "wanderlust-offline"

// HTTPClient is a wrapper around resty.Client exposing all its methods.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent resty client for baseURL with the
// given per-request timeout. Redirects are returned to the caller instead of
// being followed, so the interception layer can cache them as they are.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
