// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServer serves the local proxy and offline API. It implements
// suture.Service.
type HTTPServer struct {
	server          *http.Server
	shutdownTimeout time.Duration

	logger *logger.Logger
}

// NewHTTPServer creates a server listening on cfg.HTTPAddress.
func NewHTTPServer(handler http.Handler, cfg config.ClientServer, log *logger.Logger) (*HTTPServer, error) {
	if handler == nil {
		return nil, errNoHandler
	}

	log.Info().Str("address", cfg.HTTPAddress).Msg("creating http server")
	return &HTTPServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: defaultShutdownTimeout,
		logger:          log,
	}, nil
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (h *HTTPServer) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("http server listen: %w", err)
	}
	return h.serve(ctx, ln)
}

func (h *HTTPServer) serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		h.logger.Info().Str("address", ln.Addr().String()).Msg("http server listening")
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh

		h.logger.Info().Msg("http server shut down gracefully")
		return ctx.Err()
	}
}

func (h *HTTPServer) String() string {
	return "http-server"
}
