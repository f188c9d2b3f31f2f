// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/wanderlust-offline/internal/logger"
)

const (
	defaultSyncInterval  = 30 * time.Second
	defaultProbeInterval = 5 * time.Second
)

// SyncJob drains the queue on a ticker. It catches operations left pending
// by earlier failures, which no connectivity transition would retry.
type SyncJob struct {
	synchronizer Synchronizer
	interval     time.Duration

	logger *logger.Logger
}

// NewSyncJob creates a SyncJob. If interval is zero or negative it defaults
// to 30 seconds.
func NewSyncJob(synchronizer Synchronizer, interval time.Duration, log *logger.Logger) *SyncJob {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &SyncJob{synchronizer: synchronizer, interval: interval, logger: log}
}

// Serve runs until ctx is cancelled.
func (j *SyncJob) Serve(ctx context.Context) error {
	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			result, err := j.synchronizer.Drain(ctx)
			if err != nil {
				j.logger.Error().Err(err).Msg("periodic drain failed")
				continue
			}
			if result.Partial {
				j.logger.Warn().Int("failed_permanent", result.PermanentlyFailed).Msg("periodic drain finished with permanent failures")
			}
		}
	}
}

func (j *SyncJob) String() string {
	return "sync-job"
}

// ProbeJob refreshes the connectivity signal on a ticker, probing once
// immediately on start.
type ProbeJob struct {
	monitor  *ConnectivityMonitor
	interval time.Duration

	logger *logger.Logger
}

// NewProbeJob creates a ProbeJob. If interval is zero or negative it
// defaults to 5 seconds.
func NewProbeJob(monitor *ConnectivityMonitor, interval time.Duration, log *logger.Logger) *ProbeJob {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	return &ProbeJob{monitor: monitor, interval: interval, logger: log}
}

// Serve runs until ctx is cancelled.
func (j *ProbeJob) Serve(ctx context.Context) error {
	_ = j.monitor.Probe(ctx)

	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			_ = j.monitor.Probe(ctx)
		}
	}
}

func (j *ProbeJob) String() string {
	return "probe-job"
}
