// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/wanderlust-offline/internal/utils"
)

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.offline.GetSyncStatus(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.syncStatus", err)
		return
	}
	_, _ = utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) syncNow(w http.ResponseWriter, r *http.Request) {
	result, err := h.offline.SyncNow(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.syncNow", err)
		return
	}
	_, _ = utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) retryFailed(w http.ResponseWriter, r *http.Request) {
	reset, err := h.offline.RetryFailed(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.retryFailed", err)
		return
	}
	_, _ = utils.WriteJSON(w, retryResponse{Reset: reset}, http.StatusOK)
}

// clearAll wipes the offline data and forgets the caller's session, the
// local equivalent of logging out.
func (h *Handler) clearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.offline.ClearAll(r.Context()); err != nil {
		writeServiceError(w, r, "*Handler.clearAll", err)
		return
	}

	if sessionID, ok := utils.GetSessionIDFromContext(r.Context()); ok {
		h.sessions.Remove(sessionID)
	}
	w.WriteHeader(http.StatusNoContent)
}
