// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers supervises the long-running parts of the offline client:
// the periodic sync job, the connectivity probe and the HTTP server. Workers
// run under a suture supervisor and are restarted with backoff when they fail.
package workers

import "context"

// Worker is a long-running background task. Serve blocks until ctx is
// cancelled or the worker fails; String names it in logs.
//
// Any Worker is a suture.Service.
type Worker interface {
	Serve(ctx context.Context) error
	String() string
}
