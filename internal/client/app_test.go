// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/internal/service"
	"github.com/MKhiriev/wanderlust-offline/internal/tui"
	"github.com/MKhiriev/wanderlust-offline/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboard struct {
	logout bool
	err    error
	ran    bool
}

func (f *fakeDashboard) Run(context.Context) (bool, error) {
	f.ran = true
	return f.logout, f.err
}

func testConfig(t *testing.T, baseURL string) *config.ClientConfig {
	t.Helper()
	cfg := config.NewClientConfig(&config.StructuredConfig{
		App:     config.App{UserID: "u-1", Headless: true},
		Adapter: config.Adapter{BaseURL: baseURL},
		Storage: config.Storage{
			DB:    config.DB{DSN: ":memory:"},
			Cache: config.Cache{InMemory: true},
		},
		Server: config.Server{HTTPAddress: "127.0.0.1:0"},
	})
	return cfg
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(remote.Close)

	app, err := NewApp(context.Background(), testConfig(t, remote.URL), models.BuildInfo{}, logger.Nop())
	require.NoError(t, err)
	return app
}

func TestApp_RunHeadlessStopsOnCancel(t *testing.T) {
	app := newTestApp(t)
	assert.True(t, app.headless)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_RunDashboard(t *testing.T) {
	tests := []struct {
		name    string
		ui      *fakeDashboard
		wantErr error
	}{
		{"quit", &fakeDashboard{err: tui.ErrUserQuit}, nil},
		{"logout", &fakeDashboard{logout: true}, nil},
		{"failure", &fakeDashboard{err: errors.New("no tty")}, errors.New("no tty")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			app.headless = false
			app.ui = tt.ui

			err := app.Run(context.Background())

			assert.True(t, tt.ui.ran)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewApp_RequiresUser(t *testing.T) {
	cfg := testConfig(t, "http://localhost:1")
	cfg.App.UserID = ""

	_, err := NewApp(context.Background(), cfg, models.BuildInfo{}, logger.Nop())
	assert.ErrorIs(t, err, service.ErrNoUserID)
}

func TestNewApp_InvalidBaseURL(t *testing.T) {
	cfg := testConfig(t, "")

	_, err := NewApp(context.Background(), cfg, models.BuildInfo{}, logger.Nop())
	assert.ErrorContains(t, err, "create trip api adapter")
}

func TestResolveUserID(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "traveller-7"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	id, err := resolveUserID(config.ClientApp{UserID: "u-1", APIToken: token})
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)

	id, err = resolveUserID(config.ClientApp{APIToken: token})
	require.NoError(t, err)
	assert.Equal(t, "traveller-7", id)

	_, err = resolveUserID(config.ClientApp{APIToken: "garbage"})
	assert.Error(t, err)

	_, err = resolveUserID(config.ClientApp{})
	assert.ErrorIs(t, err, service.ErrNoUserID)
}
