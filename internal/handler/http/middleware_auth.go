// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/utils"
)

// withBearerUser puts the "sub" claim of the bearer token into the request
// context. The token is not verified here and a missing or unreadable token
// is not an error: the remote server authenticates, the client only needs to
// know whose cache to use.
func withBearerUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := utils.ParseBearerToken(header)
		if err == nil {
			var userID string
			if userID, err = utils.SubjectFromJWT(token); err == nil {
				r = r.WithContext(utils.WithUserID(r.Context(), userID))
			}
		}
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("no user id in bearer token")
		}

		next.ServeHTTP(w, r)
	})
}
