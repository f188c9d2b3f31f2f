// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidTrip = errors.New("invalid trip")
	ErrEmptyTripID = errors.New("trip id is required")
	ErrNoUserID    = errors.New("no user ID was given")
)
