// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/MKhiriev/wanderlust-offline/internal/logger"
)

const (
	failureThreshold = 5.0
	failureDecay     = 30.0
	failureBackoff   = 15 * time.Second
	shutdownTimeout  = 10 * time.Second
)

// Workers runs every added Worker under one supervisor.
type Workers struct {
	root   *suture.Supervisor
	logger *logger.Logger
}

// NewWorkers creates a supervisor named name holding workers.
func NewWorkers(name string, log *logger.Logger, workers ...Worker) *Workers {
	w := &Workers{logger: log}
	w.root = suture.New(name, suture.Spec{
		EventHook:        w.onEvent,
		FailureThreshold: failureThreshold,
		FailureDecay:     failureDecay,
		FailureBackoff:   failureBackoff,
		Timeout:          shutdownTimeout,
	})

	for _, worker := range workers {
		w.Add(worker)
	}
	return w
}

// Add registers worker. Workers added while running are started at once.
func (w *Workers) Add(worker Worker) {
	w.root.Add(worker)
}

// Run blocks until ctx is cancelled and every worker has stopped.
func (w *Workers) Run(ctx context.Context) error {
	return w.root.Serve(ctx)
}

// RunBackground starts the supervisor and returns a channel receiving its
// result.
func (w *Workers) RunBackground(ctx context.Context) <-chan error {
	return w.root.ServeBackground(ctx)
}

var eventNames = map[suture.EventType]string{
	suture.EventTypeStopTimeout:      "stop_timeout",
	suture.EventTypeServicePanic:     "service_panic",
	suture.EventTypeServiceTerminate: "service_terminate",
	suture.EventTypeBackoff:          "backoff",
	suture.EventTypeResume:           "resume",
}

// onEvent logs supervisor events with their fields.
func (w *Workers) onEvent(e suture.Event) {
	event := w.logger.Warn()
	switch e.Type() {
	case suture.EventTypeServicePanic, suture.EventTypeStopTimeout:
		event = w.logger.Error()
	case suture.EventTypeResume:
		event = w.logger.Info()
	}

	event = event.Str("event", eventNames[e.Type()])
	for k, v := range e.Map() {
		event = event.Interface(k, v)
	}
	event.Msg(e.String())
}
