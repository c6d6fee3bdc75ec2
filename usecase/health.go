package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kabang/kabang/domains/health"
	"github.com/kabang/kabang/pkg/bangcache"
)

// StoreStatus reports which driver backs the store and whether it answers.
type StoreStatus interface {
	IsConnected(ctx context.Context) bool
	Driver() string
}

type healthService struct {
	store     StoreStatus
	cache     *bangcache.Cache
	startedAt time.Time
	settings  map[string]any
	now       func() time.Time
}

// NewHealthService reports on store and cache. settings is echoed in every
// report when not nil.
func NewHealthService(store StoreStatus, cache *bangcache.Cache, startedAt time.Time, settings map[string]any) health.IHealthUsecase {
	return &healthService{
		store:     store,
		cache:     cache,
		startedAt: startedAt,
		settings:  settings,
		now:       time.Now,
	}
}

// Check never fails; a lost store connection only degrades the status.
func (s *healthService) Check(ctx context.Context) health.HealthReport {
	connected := s.store.IsConnected(ctx)
	status := health.StatusOk
	if !connected {
		status = health.StatusDegraded
	}

	return health.HealthReport{
		Status: status,
		Database: health.DatabaseStatus{
			Type:      s.store.Driver(),
			Connected: connected,
		},
		Cache:     health.CacheStatus{Bangs: s.cache.Stats().LiveEntries},
		StartedAt: s.startedAt,
		Uptime:    strings.TrimSpace(humanize.RelTime(s.startedAt, s.now(), "", "")),
		Settings:  s.settings,
	}
}
