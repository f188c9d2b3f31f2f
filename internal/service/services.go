// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/wanderlust-offline/internal/adapter"
	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/store"
	"github.com/MKhiriev/wanderlust-offline/internal/validators"
)

// Services bundles the offline client's services and background jobs.
type Services struct {
	Offline      OfflineService
	Synchronizer Synchronizer
	Connectivity *ConnectivityMonitor

	SyncJob  *SyncJob
	ProbeJob *ProbeJob

	offline *offlineService
}

// NewServices wires the services over storages and the remote api. The
// synchronizer is subscribed to connectivity so that it drains as soon as
// the client goes online.
func NewServices(storages *store.ClientStorages, api adapter.TripAPI, workers config.ClientWorkers, log *logger.Logger) (*Services, error) {
	if storages == nil || storages.Local == nil {
		return nil, errors.New("services: local store is required")
	}
	if api == nil {
		return nil, errors.New("services: trip api is required")
	}

	quota := newQuotaGuard(storages.Local)
	connectivity := NewConnectivityMonitor(api, log.WithComponent("connectivity"))
	syncer := newSynchronizer(storages.Local, api, connectivity, quota, log.WithComponent("synchronizer"))

	offline := &offlineService{
		store:        storages.Local,
		responses:    storages.Responses,
		synchronizer: syncer,
		connectivity: connectivity,
		validator:    validators.NewStructValidator(),
		quota:        quota,
		logger:       log.WithComponent("offline"),
	}

	connectivity.Subscribe(func(ctx context.Context) {
		if _, err := syncer.Drain(ctx); err != nil {
			log.Error().Err(err).Msg("drain after reconnect failed")
		}
	})

	return &Services{
		Offline:      offline,
		Synchronizer: syncer,
		Connectivity: connectivity,
		SyncJob:      NewSyncJob(syncer, workers.SyncInterval, log.WithComponent("sync-job")),
		ProbeJob:     NewProbeJob(connectivity, workers.ProbeInterval, log.WithComponent("probe-job")),
		offline:      offline,
	}, nil
}

// Wait blocks until background drains started by mutations or reconnects
// have returned.
func (s *Services) Wait() {
	s.offline.Wait()
	s.Connectivity.Wait()
}
