package usecase

import (
	"context"

	"github.com/kabang/kabang/commands"
	domainCache "github.com/kabang/kabang/domains/cache"
	domainSearch "github.com/kabang/kabang/domains/search"
	"github.com/kabang/kabang/pkg/bangcache"
	pkgError "github.com/kabang/kabang/pkg/error"
	"github.com/sirupsen/logrus"
)

type cacheService struct {
	cache    *bangcache.Cache
	registry *commands.Registry
}

func NewCacheService(cache *bangcache.Cache, registry *commands.Registry) domainCache.ICacheUsecase {
	return &cacheService{cache: cache, registry: registry}
}

func (s *cacheService) GetStats(_ context.Context) (domainCache.CacheStats, error) {
	stats := s.cache.Stats()
	return domainCache.CacheStats{
		Entries:          stats.Entries,
		LiveEntries:      stats.LiveEntries,
		TTL:              stats.TTL.String(),
		HasDefault:       stats.HasDefault,
		PermanentDefault: stats.PermanentDefault,
	}, nil
}

func (s *cacheService) Clear(_ context.Context) error {
	s.cache.Clear()
	logrus.Info("[CACHE] Cleared")
	return nil
}

// Sync runs the sync command, the same one "!!sync" triggers.
func (s *cacheService) Sync(ctx context.Context) (domainSearch.Outcome, error) {
	outcome, found := s.registry.Dispatch(ctx, commands.CommandSync.String(), "")
	if !found {
		return domainSearch.Outcome{}, pkgError.NotFoundError("sync command is not registered")
	}
	return outcome, nil
}
