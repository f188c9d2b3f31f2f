// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/wanderlust-offline/internal/adapter"
	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/store"
	"github.com/MKhiriev/wanderlust-offline/models"
)

// remoteCall is one request received by fakeRemote.
type remoteCall struct {
	Type    models.OperationType
	TripID  string
	Payload string
}

// fakeRemote is an in-memory TripAPI that records every call.
type fakeRemote struct {
	mu      sync.Mutex
	calls   []remoteCall
	fail    bool
	pingErr error

	// failPayload rejects only the dispatches carrying this payload
	failPayload string
	nextID  int

	// block, when set, is received from before each dispatch returns
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeRemote) record(c remoteCall) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, c)
	if f.fail || (f.failPayload != "" && c.Payload == f.failPayload) {
		return fmt.Errorf("%w: %w: upstream down", adapter.ErrRemoteFailure, adapter.ErrServerUnavailable)
	}
	return nil
}

func (f *fakeRemote) CreateTrip(_ context.Context, trip models.Trip) (models.Trip, error) {
	if err := f.record(remoteCall{Type: models.OperationCreate, Payload: string(trip.Payload)}); err != nil {
		return trip, err
	}

	f.mu.Lock()
	f.nextID++
	trip.ID = fmt.Sprintf("srv-%d", f.nextID)
	f.mu.Unlock()
	return trip, nil
}

func (f *fakeRemote) UpdateTrip(_ context.Context, tripID string, payload []byte) error {
	return f.record(remoteCall{Type: models.OperationUpdate, TripID: tripID, Payload: string(payload)})
}

func (f *fakeRemote) DeleteTrip(_ context.Context, tripID string) error {
	return f.record(remoteCall{Type: models.OperationDelete, TripID: tripID})
}

func (f *fakeRemote) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeRemote) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *fakeRemote) received() []remoteCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]remoteCall(nil), f.calls...)
}

// testEnv is a fully wired service layer over an in-memory SQLite store.
type testEnv struct {
	services *Services
	offline  *offlineService
	sync     *synchronizer
	store    store.LocalStore
	cache    store.ResponseCache
	remote   *fakeRemote
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.Nop()

	db, err := store.NewConnectSQLite(context.Background(), config.ClientDB{DSN: ":memory:"}, log)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	local, err := store.NewLocalStore(db, log)
	require.NoError(t, err)

	cache, err := store.NewBadgerResponseCache(config.ClientCache{InMemory: true}, log)
	require.NoError(t, err)

	storages := &store.ClientStorages{Local: local, Responses: cache}
	remote := &fakeRemote{}

	services, err := NewServices(storages, remote, config.ClientWorkers{}, log)
	require.NoError(t, err)

	t.Cleanup(func() {
		services.Wait()
		_ = storages.Close()
	})

	return &testEnv{
		services: services,
		offline:  services.offline,
		sync:     services.Synchronizer.(*synchronizer),
		store:    local,
		cache:    cache,
		remote:   remote,
	}
}

// goOnlineQuietly flips the signal without running reconnect listeners.
func (e *testEnv) goOnlineQuietly() {
	e.services.Connectivity.online.Store(true)
}

func trip(id, user, body string) models.Trip {
	return models.Trip{ID: id, UserID: user, Payload: json.RawMessage(body)}
}
