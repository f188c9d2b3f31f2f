// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/wanderlust-offline/models"
)

type dataLoadedMsg struct {
	trips  []models.CachedTrip
	status models.SyncStatus
	err    error
}

type syncDoneMsg struct {
	result models.DrainResult
	err    error
}

type retryDoneMsg struct {
	reset int
	err   error
}

type clearedMsg struct {
	err error
}

type copiedMsg struct {
	tripID string
	err    error
}

type refreshTickMsg struct{}

type clearStatusMsg struct{}
