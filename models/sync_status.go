// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncStatus is the snapshot shown to the traveller.
type SyncStatus struct {
	// PendingSyncs counts every queued change not yet confirmed by the
	// server, including permanently failed ones.
	PendingSyncs int `json:"pending_syncs"`

	// FailedSyncs counts operations that exhausted their retries.
	FailedSyncs int `json:"failed_syncs"`

	CachedTrips int        `json:"cached_trips"`
	IsOnline    bool       `json:"is_online"`
	LastSync    *time.Time `json:"last_sync,omitempty"`

	// QuotaExceeded is set once a local write failed for lack of storage.
	QuotaExceeded bool `json:"quota_exceeded"`
}

// DrainResult summarises one synchronizer pass.
type DrainResult struct {
	// Skipped is set when another drain was already running.
	Skipped bool `json:"skipped"`

	// Deferred is set when the client was offline and nothing was sent.
	Deferred bool `json:"deferred"`

	Attempted         int `json:"attempted"`
	Succeeded         int `json:"succeeded"`
	Failed            int `json:"failed"`
	PermanentlyFailed int `json:"permanently_failed"`
	Purged            int `json:"purged"`

	// Partial is set when at least one operation became failed_permanent
	// during this pass.
	Partial bool `json:"partial"`

	// QuotaExceeded is set when the pass stopped writing because local
	// storage is full.
	QuotaExceeded bool `json:"quota_exceeded"`
}
