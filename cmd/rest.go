package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/kabang/kabang/core/config"
	"github.com/kabang/kabang/ui/rest"
	"github.com/kabang/kabang/ui/rest/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve search redirects and the management API over http",
	Run:   restServer,
}

func init() {
	rootCmd.AddCommand(restCmd)
}

func newFiberApp(cfg *config.Config) *fiber.App {
	fiberConfig := fiber.Config{
		AppName:      "Kabang " + cfg.App.Version,
		Network:      "tcp",
		ServerHeader: "Hidden",
		ErrorHandler: middleware.ErrorHandler,
	}
	if len(cfg.App.TrustedProxies) > 0 {
		fiberConfig.EnableTrustedProxyCheck = true
		fiberConfig.TrustedProxies = cfg.App.TrustedProxies
		fiberConfig.ProxyHeader = fiber.HeaderXForwardedFor
	}

	app := fiber.New(fiberConfig)

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.App.CorsAllowedOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))
	app.Use(middleware.Recovery())
	app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	limit := cfg.App.RateLimitPerMinute
	if limit <= 0 {
		limit = 1000
	}
	app.Use(limiter.New(limiter.Config{
		Max:        limit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	if cfg.App.Debug {
		app.Use(logger.New())
	}
	return app
}

// mountRoutes registers every handler under the configured base path.
func mountRoutes(app *fiber.App, cfg *config.Config, services *application) {
	router := app.Group(cfg.App.BasePath)

	rest.InitRestSearch(router, services.search, services.suggestion, services.searchConfig)
	rest.InitRestKabang(router, services.kabang)
	rest.InitRestBookmark(router, services.bookmark)
	rest.InitRestCache(router, services.cacheAdmin)
	rest.InitRestHealth(router, services.health)
	rest.InitRestSpecialBangs(router, services.registry)
	rest.InitRestDashboard(router, cfg.Search.DashboardPath, cfg.App.DashboardDir)
}

func restServer(_ *cobra.Command, _ []string) {
	cfg := config.Global
	ctx := context.Background()

	services := newApplication(ctx, cfg)
	services.kabang.WarmCache(ctx)

	app := newFiberApp(cfg)
	mountRoutes(app, cfg, services)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[REST] Reception of termination signal, shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
		services.Close()
	}()

	if err := app.Listen(":" + cfg.App.Port); err != nil {
		logrus.Fatalln("Failed to start: ", err.Error())
	}
}
