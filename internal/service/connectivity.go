// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/metrics"
)

// ConnectivityMonitor holds the online/offline signal.
//
// Listeners registered with Subscribe run in their own goroutine on every
// offline to online transition.
type ConnectivityMonitor struct {
	online atomic.Bool
	pinger Pinger

	mu        sync.Mutex
	listeners []func(ctx context.Context)
	wg        sync.WaitGroup

	logger *logger.Logger
}

// NewConnectivityMonitor creates a monitor starting in the offline state.
// The first successful Probe or SetOnline(true) is a transition.
func NewConnectivityMonitor(pinger Pinger, log *logger.Logger) *ConnectivityMonitor {
	metrics.ConnectivityOnline.Set(0)
	return &ConnectivityMonitor{pinger: pinger, logger: log}
}

// IsOnline returns the current signal.
func (m *ConnectivityMonitor) IsOnline() bool {
	return m.online.Load()
}

// Subscribe registers fn to be called when connectivity returns.
func (m *ConnectivityMonitor) Subscribe(fn func(ctx context.Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, fn)
}

// SetOnline records the signal and reports whether it changed. Listeners get
// a context detached from ctx's cancellation.
func (m *ConnectivityMonitor) SetOnline(ctx context.Context, online bool) bool {
	if m.online.Swap(online) == online {
		return false
	}

	to := "offline"
	gauge := 0.0
	if online {
		to = "online"
		gauge = 1
	}
	metrics.ConnectivityOnline.Set(gauge)
	metrics.ConnectivityTransitions.WithLabelValues(to).Inc()
	m.logger.Info().Str("to", to).Msg("connectivity changed")

	if !online {
		return true
	}

	m.mu.Lock()
	listeners := append([]func(context.Context){}, m.listeners...)
	m.mu.Unlock()

	listenerCtx := context.WithoutCancel(ctx)
	for _, fn := range listeners {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			fn(listenerCtx)
		}()
	}

	return true
}

// Probe pings the remote API and updates the signal with the outcome.
func (m *ConnectivityMonitor) Probe(ctx context.Context) error {
	err := m.pinger.Ping(ctx)
	if err != nil {
		m.logger.Debug().Err(err).Msg("connectivity probe failed")
	}

	m.SetOnline(ctx, err == nil)
	return err
}

// Wait blocks until every listener started so far has returned.
func (m *ConnectivityMonitor) Wait() {
	m.wg.Wait()
}
