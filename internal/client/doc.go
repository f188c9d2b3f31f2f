// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client assembles the offline client process.
//
// It wires the local stores, the sync services, the interception layer and
// the local HTTP listener, supervises the background workers and runs the
// terminal dashboard when attached to a terminal.
package client
