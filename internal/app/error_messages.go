// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// offline API handlers.
//
// Msg* constants are the response bodies written instead of the raw error
// text when the error says nothing useful to the caller or would leak
// internals such as SQL statements.
package app

const (
	// MsgInternalServerError is returned when an unexpected local failure
	// occurs that the caller cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgStorageQuotaExceeded is returned when the change could not be
	// stored because the device ran out of local storage. Nothing was
	// queued.
	MsgStorageQuotaExceeded = "local storage is full, the change was not saved"
)
