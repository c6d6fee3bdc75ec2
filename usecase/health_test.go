package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/kabang/kabang/domains/health"
	"github.com/kabang/kabang/pkg/bangcache"
	"github.com/stretchr/testify/assert"
)

func TestHealthService_Check(t *testing.T) {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cache := bangcache.New(bangcache.DefaultTTL)
	cache.Set("g", "https://www.google.com/search?q={query}")
	failover := connectedFailover()

	svc := NewHealthService(failover, cache, started, nil).(*healthService)
	svc.now = func() time.Time { return started.Add(3 * time.Hour) }

	report := svc.Check(context.Background())
	assert.Equal(t, health.StatusOk, report.Status)
	assert.Equal(t, "sqlite", report.Database.Type)
	assert.True(t, report.Database.Connected)
	assert.Equal(t, 1, report.Cache.Bangs)
	assert.Equal(t, started, report.StartedAt)
	assert.Equal(t, "3 hours", report.Uptime)
	assert.Nil(t, report.Settings)
}

func TestHealthService_EchoesSettings(t *testing.T) {
	settings := map[string]any{"db_driver": "sqlite"}
	svc := NewHealthService(connectedFailover(), bangcache.New(0), time.Now(), settings)

	assert.Equal(t, settings, svc.Check(context.Background()).Settings)
}

func TestHealthService_DegradedWhenStoreDown(t *testing.T) {
	failover := &fakeFailover{}
	svc := NewHealthService(failover, bangcache.New(0), time.Now(), nil)

	report := svc.Check(context.Background())
	assert.Equal(t, health.StatusDegraded, report.Status)
	assert.False(t, report.Database.Connected)
}

func TestHealthService_CountsOnlyLiveEntries(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cache := bangcache.New(time.Minute, bangcache.WithClock(func() time.Time { return now }))
	cache.Set("g", "https://www.google.com/search?q={query}")

	svc := NewHealthService(connectedFailover(), cache, now, nil)
	assert.Equal(t, 1, svc.Check(context.Background()).Cache.Bangs)

	now = now.Add(time.Hour)
	assert.Equal(t, 0, svc.Check(context.Background()).Cache.Bangs)
}
