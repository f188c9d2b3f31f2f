// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the local HTTP listener of the offline client as a
// supervised service with graceful shutdown.
package server
