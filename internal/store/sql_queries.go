// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	tripsTable     = "trips"
	syncQueueTable = "sync_queue"

	lastSyncKey   = "lastSync"
	quotaProbeKey = "__quota_probe__"
)

var (
	tripColumns = []string{
		"trip_id",
		"user_id",
		"payload",
		"is_synced",
		"cached_at",
		"last_accessed",
	}

	operationColumns = []string{
		"id",
		"type",
		"trip_id",
		"user_id",
		"payload",
		"status",
		"retries",
		"timestamp",
		"last_error",
	}
)

const (
	upsertTrip = `
		INSERT INTO trips (trip_id, user_id, payload, is_synced, cached_at, last_accessed)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (trip_id) DO UPDATE SET
			user_id       = excluded.user_id,
			payload       = excluded.payload,
			is_synced     = excluded.is_synced,
			cached_at     = excluded.cached_at,
			last_accessed = excluded.last_accessed;`

	getTrip = `
		SELECT trip_id, user_id, payload, is_synced, cached_at, last_accessed
		FROM trips
		WHERE trip_id = ?;`

	touchTrip = `UPDATE trips SET last_accessed = ? WHERE trip_id = ?;`

	markTripSynced = `
		UPDATE trips SET is_synced = 1
		WHERE trip_id = ?
		  AND NOT EXISTS (
			SELECT 1 FROM sync_queue
			WHERE trip_id = ? AND id > ? AND status IN ('pending', 'failed_permanent')
		  );`

	deleteTrip = `DELETE FROM trips WHERE trip_id = ?;`

	countTrips = `SELECT COUNT(*) FROM trips;`

	insertOperation = `
		INSERT INTO sync_queue (type, trip_id, user_id, payload, status, retries, timestamp, last_error)
		VALUES (?, ?, ?, ?, ?, 0, ?, NULL);`

	updateOperation = `
		UPDATE sync_queue SET
			status     = ?,
			retries    = ?,
			last_error = ?
		WHERE id = ?;`

	resetFailedPermanent = `
		UPDATE sync_queue SET
			status     = 'pending',
			retries    = 0,
			last_error = NULL
		WHERE status = 'failed_permanent';`

	purgeCompleted = `DELETE FROM sync_queue WHERE status = 'completed';`

	getMetadata = `SELECT value FROM metadata WHERE name = ?;`

	upsertMetadata = `
		INSERT INTO metadata (name, value) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value;`

	deleteMetadata = `DELETE FROM metadata WHERE name = ?;`

	clearTrips     = `DELETE FROM trips;`
	clearSyncQueue = `DELETE FROM sync_queue;`
	clearMetadata  = `DELETE FROM metadata;`
)
