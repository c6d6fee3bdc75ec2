package cmd

import (
	"context"
	"time"

	"github.com/kabang/kabang/commands"
	"github.com/kabang/kabang/core/config"
	"github.com/kabang/kabang/core/database"
	domainBookmark "github.com/kabang/kabang/domains/bookmark"
	domainCache "github.com/kabang/kabang/domains/cache"
	"github.com/kabang/kabang/domains/health"
	domainKabang "github.com/kabang/kabang/domains/kabang"
	domainSearch "github.com/kabang/kabang/domains/search"
	"github.com/kabang/kabang/infrastructure/valkey"
	"github.com/kabang/kabang/pkg/bangcache"
	"github.com/kabang/kabang/repository"
	"github.com/kabang/kabang/usecase"
	"github.com/sirupsen/logrus"
)

// application holds every wired component of a running server.
type application struct {
	controller *database.Controller
	valkey     *valkey.Client

	cache        *bangcache.Cache
	registry     *commands.Registry
	// searchConfig carries the dashboard URL with the base path applied.
	searchConfig config.SearchConfig

	search     usecase.SearchService
	suggestion domainSearch.ISuggestionUsecase
	kabang     domainKabang.IKabangUsecase
	bookmark   domainBookmark.IBookmarkUsecase
	cacheAdmin domainCache.ICacheUsecase
	health     health.IHealthUsecase
}

func newController(cfg *config.Config) *database.Controller {
	driver := database.DriverName(cfg)
	return database.NewController(database.NewConnector(cfg), database.ControllerConfig{
		Driver:         driver,
		Pooled:         database.IsPooled(driver),
		ProbeTimeout:   cfg.Failover.ProbeTimeout,
		ConnectTimeout: cfg.Failover.ConnectTimeout,
		ReconnectWait:  cfg.Failover.ReconnectWait,
		OnConnect:      repository.Migrate,
	})
}

// newApplication connects what it can and wires the rest. A store that is
// down at startup leaves the service in degraded mode.
func newApplication(ctx context.Context, cfg *config.Config) *application {
	startedAt := time.Now()

	controller := newController(cfg)
	if !controller.Start(ctx) {
		logrus.Warnf("[DB] %s unavailable at startup, running in degraded mode", controller.Driver())
	}

	kabangRepo := repository.NewKabangGormRepository(controller)
	bookmarkRepo := repository.NewBookmarkGormRepository(controller)

	var (
		vkClient *valkey.Client
		snapshot domainKabang.ISnapshotStore
	)
	if cfg.Database.ValkeyEnabled {
		client, err := valkey.NewClient(ctx, valkey.ConfigFrom(cfg))
		if err != nil {
			logrus.WithError(err).Warn("[VALKEY] Connection failed, snapshots disabled")
		} else {
			logrus.Infof("[VALKEY] Connected to %s", cfg.Database.ValkeyAddress)
			vkClient = client
			snapshot = repository.NewValkeySnapshotStore(client)
		}
	}

	var settings map[string]any
	if cfg.App.Debug {
		settings = cfg.Settings()
	}

	searchConfig := cfg.Search
	searchConfig.DashboardPath = cfg.DashboardURL()

	cache := bangcache.New(cfg.Cache.TTL)
	registry := commands.NewRegistry()
	search := usecase.NewSearchService(cache, controller, kabangRepo, registry, searchConfig)

	commands.RegisterBuiltins(registry, commands.Deps{
		Cache:            cache,
		Failover:         controller,
		Kabangs:          kabangRepo,
		Bookmarks:        bookmarkRepo,
		Snapshot:         snapshot,
		Lookup:           search,
		DashboardPath:    searchConfig.DashboardPath,
		DashboardCommand: searchConfig.DashboardCommand,
	})

	return &application{
		controller:   controller,
		valkey:       vkClient,
		cache:        cache,
		registry:     registry,
		searchConfig: searchConfig,
		search:       search,
		suggestion:   usecase.NewSuggestionService(cache, registry),
		kabang:       usecase.NewKabangService(kabangRepo, controller, cache, snapshot),
		bookmark:     usecase.NewBookmarkService(bookmarkRepo, controller),
		cacheAdmin:   usecase.NewCacheService(cache, registry),
		health:       usecase.NewHealthService(controller, cache, startedAt, settings),
	}
}

// Close releases the store and Valkey handles.
func (a *application) Close() {
	if a.valkey != nil {
		a.valkey.Close()
	}
	a.controller.Close()
	logrus.Info("[APP] Stopped")
}
