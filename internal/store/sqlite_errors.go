// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result of [ErrorClassificator.Classify].
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors, constraint
	// violations and schema errors.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient contention (busy or locked database).
	Retryable

	// QuotaExceeded marks a write that did not fit into the store.
	QuotaExceeded
)

// String implements fmt.Stringer for log fields.
func (c ErrorClassification) String() string {
	switch c {
	case Retryable:
		return "retryable"
	case QuotaExceeded:
		return "quota_exceeded"
	default:
		return "non_retryable"
	}
}

// SQLiteErrorClassifier implements [ErrorClassificator] for go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify unwraps err to a sqlite3.Error and maps its code. Errors that
// already wrap [ErrStorageQuotaExceeded] keep that classification.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}
	if errors.Is(err, ErrStorageQuotaExceeded) {
		return QuotaExceeded
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return ClassifySQLiteError(sqliteErr)
	}

	return NonRetryable
}

// ClassifySQLiteError maps a sqlite3.Error by its primary result code.
//
//   - SQLITE_FULL → QuotaExceeded (max_page_count reached or disk full)
//   - SQLITE_BUSY, SQLITE_LOCKED → Retryable
//   - anything else → NonRetryable
func ClassifySQLiteError(err sqlite3.Error) ErrorClassification {
	switch err.Code {
	case sqlite3.ErrFull:
		return QuotaExceeded
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	}
	return NonRetryable
}

// wrapWriteError wraps a failed write with kind and, when the classifier
// reports quota exhaustion, with [ErrStorageQuotaExceeded] as well.
func wrapWriteError(c ErrorClassificator, kind error, err error) error {
	if c.Classify(err) == QuotaExceeded {
		return fmt.Errorf("%w: %w: %w", ErrStorageQuotaExceeded, kind, err)
	}
	return fmt.Errorf("%w: %w", kind, err)
}
