// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	var cause error
	switch resp.StatusCode() {
	case http.StatusBadRequest:
		cause = ErrBadRequest
	case http.StatusUnauthorized:
		cause = ErrUnauthorized
	case http.StatusForbidden:
		cause = ErrForbidden
	case http.StatusNotFound:
		cause = ErrNotFound
	case http.StatusConflict:
		cause = ErrConflict
	case http.StatusInternalServerError:
		cause = ErrInternalServerError
	case http.StatusBadGateway:
		cause = ErrBadGateway
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		cause = ErrServerUnavailable
	default:
		if resp.StatusCode() >= http.StatusBadRequest && resp.StatusCode() < http.StatusInternalServerError {
			cause = ErrClientRejected
		} else {
			return fmt.Errorf("%w: http %d: %s", ErrRemoteFailure, resp.StatusCode(), body)
		}
	}

	return fmt.Errorf("%w: %w: %s", ErrRemoteFailure, cause, body)
}

// isClientError reports whether err is a 4xx answer. The server is up in that
// case, so the circuit breaker does not count it.
func isClientError(err error) bool {
	return errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrClientRejected)
}
