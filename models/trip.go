// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// Trip is the UI-facing trip value. Payload is the opaque trip body
// (destination, dates, itinerary) exactly as the remote API exchanges it.
type Trip struct {
	// ID is the server-side trip id. Empty for a trip that has not been
	// created on the server yet.
	ID string `json:"id,omitempty"`

	// UserID is the owning traveller.
	UserID string `json:"user_id" validate:"required"`

	// Payload is the trip body. Must be a JSON document.
	Payload json.RawMessage `json:"payload" validate:"required,json"`
}

// CachedTrip is a trip snapshot held in the Local Store.
type CachedTrip struct {
	TripID  string          `json:"trip_id"`
	UserID  string          `json:"user_id"`
	Payload json.RawMessage `json:"payload"`

	// IsSynced is false while a local change to this trip has not been
	// confirmed by the server.
	IsSynced bool `json:"is_synced"`

	CachedAt     time.Time `json:"cached_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// Trip converts the snapshot back to the UI-facing value.
func (c CachedTrip) Trip() Trip {
	return Trip{ID: c.TripID, UserID: c.UserID, Payload: c.Payload}
}

// Title returns the "title" (or "destination") field of the payload, or the
// trip id when neither is present.
func (c CachedTrip) Title() string {
	var head struct {
		Title       string `json:"title"`
		Destination string `json:"destination"`
	}
	if err := json.Unmarshal(c.Payload, &head); err == nil {
		if head.Title != "" {
			return head.Title
		}
		if head.Destination != "" {
			return head.Destination
		}
	}
	return c.TripID
}
