// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/wanderlust-offline/internal/adapter"
	"github.com/MKhiriev/wanderlust-offline/internal/service"
	"github.com/MKhiriev/wanderlust-offline/internal/store"
)

// ErrUserQuit is returned when the dashboard is left with q or ctrl+c.
var ErrUserQuit = errors.New("user quit")

func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, store.ErrStorageQuotaExceeded):
		return "Local storage is full. Free some space and retry."
	case errors.Is(err, adapter.ErrCircuitOpen):
		return "Server keeps failing. Sync paused for a while."
	case errors.Is(err, service.ErrNoUserID):
		return "No user configured. Set a user id or an API token."
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "No network or the server is unreachable"
	}

	return err.Error()
}
