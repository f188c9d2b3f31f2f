// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/service"
	"github.com/MKhiriev/wanderlust-offline/internal/session"
	"github.com/MKhiriev/wanderlust-offline/internal/utils"
	"github.com/MKhiriev/wanderlust-offline/internal/validators"
)

type Handler struct {
	offline     service.OfflineService
	interceptor http.Handler
	sessions    *session.Store
	validator   validators.Validator
	ids         *utils.UUIDGenerator

	server config.ClientServer
	app    config.ClientApp

	logger *logger.Logger
}

// NewHandler creates the HTTP handler. interceptor receives every request
// outside the offline API.
func NewHandler(
	offline service.OfflineService,
	interceptor http.Handler,
	sessions *session.Store,
	serverCfg config.ClientServer,
	appCfg config.ClientApp,
	logger *logger.Logger,
) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		offline:     offline,
		interceptor: interceptor,
		sessions:    sessions,
		validator:   validators.NewStructValidator(),
		ids:         utils.NewUUIDGenerator(),
		server:      serverCfg,
		app:         appCfg,
		logger:      logger,
	}
}
