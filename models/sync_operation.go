// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// MaxSyncRetries is the number of failed delivery attempts after which an
// operation is parked as [OperationFailedPermanent].
const MaxSyncRetries = 3

// OperationType is the kind of change a queued operation carries.
type OperationType string

const (
	OperationCreate OperationType = "create"
	OperationUpdate OperationType = "update"
	OperationDelete OperationType = "delete"
)

// Valid reports whether t is one of the known operation types.
func (t OperationType) Valid() bool {
	switch t {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// OperationStatus is the delivery state of a queued operation.
type OperationStatus string

const (
	// OperationPending is waiting for delivery (including after a failure
	// that still has retries left).
	OperationPending OperationStatus = "pending"

	// OperationCompleted was accepted by the server and is eligible for
	// purging.
	OperationCompleted OperationStatus = "completed"

	// OperationFailed is part of the queue's status vocabulary. The
	// synchronizer never assigns it.
	OperationFailed OperationStatus = "failed"

	// OperationFailedPermanent exhausted its retries and is never
	// dispatched again automatically.
	OperationFailedPermanent OperationStatus = "failed_permanent"
)

// SyncOperation is one deferred mutation waiting to be replayed against the
// remote trip API. Operations are dispatched in ID order.
type SyncOperation struct {
	ID        int64           `json:"id"`
	Type      OperationType   `json:"type"`
	TripID    *string         `json:"trip_id,omitempty"`
	UserID    string          `json:"user_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Status    OperationStatus `json:"status"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`
	LastError *string         `json:"last_error,omitempty"`
}

// RecordFailure applies the retry state machine after a failed delivery:
// retries is incremented and the status becomes failed_permanent once
// [MaxSyncRetries] is reached, pending otherwise.
func (op *SyncOperation) RecordFailure(cause error) {
	op.Retries++
	msg := cause.Error()
	op.LastError = &msg

	if op.Retries >= MaxSyncRetries {
		op.Status = OperationFailedPermanent
		return
	}
	op.Status = OperationPending
}

// RecordSuccess marks the operation as delivered.
func (op *SyncOperation) RecordSuccess() {
	op.Status = OperationCompleted
	op.LastError = nil
}

// TripIDValue returns the trip id or an empty string for creates.
func (op *SyncOperation) TripIDValue() string {
	if op.TripID == nil {
		return ""
	}
	return *op.TripID
}
