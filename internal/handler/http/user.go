// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/wanderlust-offline/internal/service"
	"github.com/MKhiriev/wanderlust-offline/internal/session"
	"github.com/MKhiriev/wanderlust-offline/internal/utils"
)

// resolveUserID picks the traveller for a request: the explicit id from the
// query or body, then the "sub" claim of the bearer token, then the session,
// then the configured default. The resolved id is remembered in the session.
func (h *Handler) resolveUserID(r *http.Request, explicit string) (string, error) {
	userID := strings.TrimSpace(explicit)

	if userID == "" {
		userID, _ = utils.GetUserIDFromContext(r.Context())
	}

	sessionID, hasSession := utils.GetSessionIDFromContext(r.Context())
	if userID == "" && hasSession {
		if sc, ok := h.sessions.Get(sessionID); ok {
			userID = sc.UserID
		}
	}

	if userID == "" {
		userID = h.app.UserID
	}
	if userID == "" {
		return "", service.ErrNoUserID
	}

	if hasSession {
		h.sessions.Update(sessionID, func(sc session.Context) session.Context {
			sc.UserID = userID
			return sc
		})
	}
	return userID, nil
}

// rememberTrip records the last trip viewed or changed in the session.
func (h *Handler) rememberTrip(r *http.Request, tripID string) {
	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		return
	}
	h.sessions.Update(sessionID, func(sc session.Context) session.Context {
		sc.LastTripID = tripID
		return sc
	})
}
