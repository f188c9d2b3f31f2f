// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges and validates the offline client
// configuration.
//
// Sources are applied in this order (later sources override earlier
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// [GetClientConfig] is the entry point used by cmd/client.
package config
