// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain error", err: errors.New("x"), want: NonRetryable},
		{name: "disk full", err: sqlite3.Error{Code: sqlite3.ErrFull}, want: QuotaExceeded},
		{name: "wrapped disk full", err: fmt.Errorf("put: %w", sqlite3.Error{Code: sqlite3.ErrFull}), want: QuotaExceeded},
		{name: "busy", err: sqlite3.Error{Code: sqlite3.ErrBusy}, want: Retryable},
		{name: "locked", err: sqlite3.Error{Code: sqlite3.ErrLocked}, want: Retryable},
		{name: "constraint", err: sqlite3.Error{Code: sqlite3.ErrConstraint}, want: NonRetryable},
		{name: "already classified", err: fmt.Errorf("w: %w", ErrStorageQuotaExceeded), want: QuotaExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestErrorClassification_String(t *testing.T) {
	assert.Equal(t, "quota_exceeded", QuotaExceeded.String())
	assert.Equal(t, "retryable", Retryable.String())
	assert.Equal(t, "non_retryable", NonRetryable.String())
}

func TestEnsureDBDir(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, ensureDBDir(":memory:"))
	assert.NoError(t, ensureDBDir("file::memory:?cache=shared"))
	assert.NoError(t, ensureDBDir("file:"+dir+"/nested/trips.db?_busy_timeout=5000"))
	assert.DirExists(t, dir+"/nested")
}
