// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "encoding/json"

// saveTripRequest is the body of POST /offline/trips.
type saveTripRequest struct {
	ID      string          `json:"id" validate:"required"`
	UserID  string          `json:"user_id"`
	Payload json.RawMessage `json:"payload" validate:"required,json"`
}

// createTripRequest is the body of POST /offline/trips/create.
type createTripRequest struct {
	UserID  string          `json:"user_id"`
	Payload json.RawMessage `json:"payload" validate:"required,json"`
}

// updateTripRequest is the body of PUT /offline/trips/{tripID}. NeedsSync
// defaults to true.
type updateTripRequest struct {
	UserID    string          `json:"user_id"`
	Payload   json.RawMessage `json:"payload" validate:"required,json"`
	NeedsSync *bool           `json:"needs_sync"`
}

type retryResponse struct {
	Reset int `json:"reset"`
}
