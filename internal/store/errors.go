// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by the Local Store and the response cache.
// Callers should use [errors.Is] to match against these values.
var (
	// ErrStorageQuotaExceeded is returned (wrapped) by any write that failed
	// because the store reached its size limit. Callers must stop issuing
	// further writes and tell the traveller.
	ErrStorageQuotaExceeded = errors.New("local storage quota exceeded")

	// ErrEmptyTripID is returned when a trip snapshot has no id.
	ErrEmptyTripID = errors.New("trip id is empty")

	// ErrOperationNotFound is returned when updating an unknown queue entry.
	ErrOperationNotFound = errors.New("sync operation was not found")

	// ErrInvalidOperation is returned when enqueuing an operation with an
	// unknown type or a missing trip id for update/delete.
	ErrInvalidOperation = errors.New("invalid sync operation")

	// ErrNilDB is returned when a store is constructed without a database.
	ErrNilDB = errors.New("database handle is nil")

	// ErrCacheClosed is returned by response cache calls after Close.
	ErrCacheClosed = errors.New("response cache is closed")
)

// Low-level database operation errors, wrapped together with the driver
// error.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when a transaction cannot start.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
