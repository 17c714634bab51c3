package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/common"
	"github.com/matst80/slask-storefront/pkg/config"
	"github.com/matst80/slask-storefront/pkg/page"
	"github.com/matst80/slask-storefront/pkg/server"
	"github.com/matst80/slask-storefront/pkg/storage"
	"github.com/matst80/slask-storefront/pkg/tracking"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront api and the debug server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// buildSource picks the product source for the fetch mode. The returned
// close function releases whatever the source holds.
func buildSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (catalog.ProductSource, func() error, error) {
	if cfg.Catalog.FetchMode == types.FetchStatic {
		ds := storage.NewDiskStorage(cfg.Country, cfg.SnapshotDir)
		if err := os.MkdirAll(ds.Folder(), 0o755); err != nil {
			return nil, nil, err
		}
		static := catalog.NewStaticSource(ds, logger)
		if err := static.Watch(ctx); err != nil {
			return nil, nil, err
		}
		return static, func() error { return nil }, nil
	}
	upstream := catalog.NewHttpSource(cfg.Catalog.Url, cfg.Catalog.Timeout)
	if cfg.Redis.Addr == "" {
		logger.Info("no redis configured, catalog is fetched per session")
		return upstream, func() error { return nil }, nil
	}
	cache := catalog.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := cache.Ping(ctx); err != nil {
		logger.Warn("redis not reachable, catalog cache reads will fall through", zap.Error(err))
	}
	return catalog.NewCachedSource(upstream, cache, cfg.Catalog.Revalidate, logger), cache.Close, nil
}

func buildTracking(cfg *config.Config, logger *zap.Logger) types.Tracking {
	if cfg.RabbitUrl == "" {
		return nil
	}
	trk, err := tracking.NewRabbitTracking(cfg.RabbitUrl, cfg.Country, logger)
	if err != nil {
		logger.Warn("tracking disabled", zap.Error(err))
		return nil
	}
	return trk
}

func serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	source, closeSource, err := buildSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	trk := buildTracking(cfg, logger)

	sessions := server.NewSessionStore(cfg.SessionTTL, func() *page.Controller {
		return page.NewController(page.Options{
			Source:       source,
			FilterGroups: cfg.FilterGroups,
			NavLinks:     cfg.NavLinks,
			Logger:       logger,
		})
	})
	go sessions.Run(ctx, time.Minute)

	ws := server.NewStorefrontServer(sessions, trk, cfg.Catalog.FetchMode, logger)

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      cfg.Catalog.Timeout + 15*time.Second,
		Idle:       60 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	})

	var debugServer *http.Server
	if cfg.DebugAddress != "" {
		debugServer = common.NewServerWithTimeouts(&http.Server{
			Addr:    cfg.DebugAddress,
			Handler: server.DebugMux(cfg.Profiling),
		}, timeouts)
		go func() {
			logger.Info("starting debug server", zap.String("addr", cfg.DebugAddress))
			if err := debugServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("debug server failed", zap.Error(err))
			}
		}()
	}

	apiServer := common.NewServerWithTimeouts(&http.Server{
		Addr:    cfg.ListenAddress,
		Handler: ws.Handle(),
	}, timeouts)

	common.RunServerWithShutdown(apiServer, logger, "storefront api", timeouts.Shutdown, timeouts.Hook,
		func(ctx context.Context) error {
			cancel()
			return nil
		},
		func(ctx context.Context) error {
			if debugServer == nil {
				return nil
			}
			return debugServer.Shutdown(ctx)
		},
		func(ctx context.Context) error {
			if trk == nil {
				return nil
			}
			return trk.Close()
		},
		func(ctx context.Context) error {
			return closeSource()
		},
	)
	return nil
}
