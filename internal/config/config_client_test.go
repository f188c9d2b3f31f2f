package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStructuredConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{UserID: "u-1"},
		Storage: Storage{DB: DB{DSN: "file:wl.db"}, Cache: Cache{InMemory: true}},
		Adapter: Adapter{BaseURL: "http://localhost:3000"},
	}
}

func TestNewClientConfig_AppliesDefaults(t *testing.T) {
	cfg := NewClientConfig(validStructuredConfig())

	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultSyncInterval, cfg.Workers.SyncInterval)
	assert.Equal(t, DefaultProbeInterval, cfg.Workers.ProbeInterval)
	assert.Equal(t, uint32(DefaultBreakerFailures), cfg.Adapter.BreakerFailures)
	assert.Equal(t, DefaultAPIPrefix, cfg.Interceptor.APIPrefix)
	assert.Equal(t, DefaultTripListPath, cfg.Interceptor.TripListPath)
	assert.Equal(t, DefaultSessionCapacity, cfg.Session.Capacity)
	assert.Equal(t, DefaultLogLevel, cfg.App.LogLevel)
}

func TestNewClientConfig_KeepsExplicitValues(t *testing.T) {
	sc := validStructuredConfig()
	sc.Workers.SyncInterval = 5 * time.Second
	sc.Interceptor.TripListPath = "/trips"

	cfg := NewClientConfig(sc)
	assert.Equal(t, 5*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, "/trips", cfg.Interceptor.TripListPath)
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StructuredConfig)
		want   error
	}{
		{name: "empty dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, want: ErrInvalidStorageConfigs},
		{name: "cache without dir", mutate: func(c *StructuredConfig) { c.Storage.Cache = Cache{} }, want: ErrInvalidStorageConfigs},
		{name: "missing base url", mutate: func(c *StructuredConfig) { c.Adapter.BaseURL = "" }, want: ErrInvalidAdapterConfigs},
		{name: "no identity", mutate: func(c *StructuredConfig) { c.App.UserID = "" }, want: ErrInvalidAppConfigs},
		{name: "token is enough", mutate: func(c *StructuredConfig) { c.App.UserID = ""; c.App.APIToken = "tok" }},
		{name: "cache dir is enough", mutate: func(c *StructuredConfig) { c.Storage.Cache = Cache{Dir: "/tmp/c"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := validStructuredConfig()
			tt.mutate(sc)

			err := NewClientConfig(sc).validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
