// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/wanderlust-offline/internal/session"
	"github.com/MKhiriev/wanderlust-offline/internal/utils"
)

// withSession resolves the session id from the X-Session-ID header or the
// session cookie. A new id is issued when neither is present.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(session.HeaderName)
		if sessionID == "" {
			if c, err := r.Cookie(session.CookieName); err == nil {
				sessionID = c.Value
			}
		}

		if sessionID == "" {
			sessionID = h.ids.Generate()
			http.SetCookie(w, &http.Cookie{
				Name:     session.CookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(session.HeaderName, sessionID)

		ctx := utils.WithSessionID(r.Context(), sessionID)
		zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("session_id", sessionID)
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
