// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/wanderlust-offline/internal/service"
	"github.com/MKhiriev/wanderlust-offline/internal/store"
	"github.com/MKhiriev/wanderlust-offline/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:      http.StatusBadRequest,
	ErrTripNotCached:    http.StatusNotFound,
	ErrInvalidNeedsSync: http.StatusBadRequest,

	service.ErrInvalidTrip:         http.StatusBadRequest,
	service.ErrEmptyTripID:         http.StatusBadRequest,
	service.ErrNoUserID:            http.StatusBadRequest,
	validators.ErrValidationFailed: http.StatusBadRequest,
	validators.ErrUnsupportedType:  http.StatusBadRequest,

	store.ErrStorageQuotaExceeded: http.StatusInsufficientStorage,
	store.ErrEmptyTripID:          http.StatusBadRequest,
	store.ErrInvalidOperation:     http.StatusBadRequest,
	store.ErrOperationNotFound:    http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// statusFromError maps err to a response status. Mapped statuses other than
// 500 win, the lowest one first, so a quota error wrapping a statement error
// still reports 507.
func statusFromError(err error) int {
	status := 0
	for target, s := range errorStatusMap {
		if s == http.StatusInternalServerError || !errors.Is(err, target) {
			continue
		}
		if status == 0 || s < status {
			status = s
		}
	}
	if status == 0 {
		return http.StatusInternalServerError
	}
	return status
}
