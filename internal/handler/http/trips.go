// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/wanderlust-offline/internal/app"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/utils"
	"github.com/MKhiriev/wanderlust-offline/models"
)

// writeServiceError logs err and writes it with its mapped status.
func writeServiceError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError && status != http.StatusInsufficientStorage {
		event = log.Error()
	}
	event.Err(err).Str("func", fn).Int("status", status).Msg("request failed")

	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		message = app.MsgInternalServerError
	case http.StatusInsufficientStorage:
		message = app.MsgStorageQuotaExceeded
	}
	utils.WriteError(w, message, status)
}

// decodeAndValidate decodes the JSON body into dst and validates it.
func (h *Handler) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return h.validator.Validate(r.Context(), dst)
}

func (h *Handler) saveTrip(w http.ResponseWriter, r *http.Request) {
	var req saveTripRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, "*Handler.saveTrip", err)
		return
	}

	userID, err := h.resolveUserID(r, req.UserID)
	if err != nil {
		writeServiceError(w, r, "*Handler.saveTrip", err)
		return
	}

	trip := models.Trip{ID: req.ID, UserID: userID, Payload: req.Payload}
	if err = h.offline.SaveTripForOffline(r.Context(), trip, userID); err != nil {
		writeServiceError(w, r, "*Handler.saveTrip", err)
		return
	}

	h.rememberTrip(r, req.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listTrips(w http.ResponseWriter, r *http.Request) {
	userID, err := h.resolveUserID(r, r.URL.Query().Get("user_id"))
	if err != nil {
		writeServiceError(w, r, "*Handler.listTrips", err)
		return
	}

	trips, err := h.offline.GetOfflineTrips(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "*Handler.listTrips", err)
		return
	}
	if trips == nil {
		trips = []models.CachedTrip{}
	}

	_, _ = utils.WriteJSON(w, trips, http.StatusOK)
}

func (h *Handler) getTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")

	trip, err := h.offline.GetOfflineTrip(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, "*Handler.getTrip", err)
		return
	}
	if trip == nil {
		utils.WriteError(w, ErrTripNotCached.Error(), http.StatusNotFound)
		return
	}

	h.rememberTrip(r, tripID)
	_, _ = utils.WriteJSON(w, trip, http.StatusOK)
}

func (h *Handler) createTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, "*Handler.createTrip", err)
		return
	}

	userID, err := h.resolveUserID(r, req.UserID)
	if err != nil {
		writeServiceError(w, r, "*Handler.createTrip", err)
		return
	}

	op, err := h.offline.RecordCreate(r.Context(), models.Trip{UserID: userID, Payload: req.Payload})
	if err != nil {
		writeServiceError(w, r, "*Handler.createTrip", err)
		return
	}

	_, _ = utils.WriteJSON(w, op, http.StatusAccepted)
}

func (h *Handler) updateTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")

	var req updateTripRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeServiceError(w, r, "*Handler.updateTrip", err)
		return
	}

	userID, err := h.resolveUserID(r, req.UserID)
	if err != nil {
		writeServiceError(w, r, "*Handler.updateTrip", err)
		return
	}

	needsSync := req.NeedsSync == nil || *req.NeedsSync
	trip := models.Trip{ID: tripID, UserID: userID, Payload: req.Payload}
	if err = h.offline.RecordUpdate(r.Context(), trip, needsSync); err != nil {
		writeServiceError(w, r, "*Handler.updateTrip", err)
		return
	}

	h.rememberTrip(r, tripID)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) deleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripID")

	needsSync := true
	if raw := r.URL.Query().Get("needs_sync"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeServiceError(w, r, "*Handler.deleteTrip", fmt.Errorf("%w: %w", ErrInvalidNeedsSync, err))
			return
		}
		needsSync = parsed
	}

	userID, err := h.resolveUserID(r, r.URL.Query().Get("user_id"))
	if err != nil && needsSync {
		writeServiceError(w, r, "*Handler.deleteTrip", err)
		return
	}

	if err = h.offline.RecordDelete(r.Context(), tripID, userID, needsSync); err != nil {
		writeServiceError(w, r, "*Handler.deleteTrip", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
