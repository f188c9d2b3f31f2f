// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/wanderlust-offline/internal/client"
	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.BuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}
	fmt.Printf("WanderLust offline client %s\n", build)

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("wanderlust-offline").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("wanderlust-offline", cfg.App.LogFile, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := client.NewApp(ctx, cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
