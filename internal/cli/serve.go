package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oadl/heatsheet/pkg/cache"
	"github.com/oadl/heatsheet/pkg/pipeline"
	"github.com/oadl/heatsheet/pkg/server"
	"github.com/oadl/heatsheet/pkg/store"
)

// serveCommand creates the serve command, hosting the draw pipeline
// behind HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configFile string
		noCache    bool
		noMetrics  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the draw pipeline over HTTP",
		Long: `Serve hosts the pipeline: POST payloads to /api/draw, read the mounted
result from /view or /api/tree, and save sheets for replay under
/api/sheets.

Cache and store backends come from the config file; redis and mongo are
opt-in, the defaults need no external services.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configFile, noCache, noMetrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, configFile string, noCache, noMetrics bool) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	cc, err := c.serveCache(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer cc.Close()

	sheets, err := c.serveStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer sheets.Close(context.Background())

	runner := pipeline.NewRunner(cc, nil, c.Logger)
	srv, err := server.New(server.Config{
		Addr: addr,
		DrawOptions: pipeline.Options{
			Document: cfg.Render.Document,
			Title:    cfg.Render.Title,
			Indent:   cfg.Render.Indent,
			Logger:   c.Logger,
		},
		Metrics: cfg.Server.Metrics && !noMetrics,
	}, runner, sheets, c.Logger)
	if err != nil {
		return err
	}

	return srv.ListenAndServe(ctx)
}

// serveCache builds the cache backend the config names.
func (c *CLI) serveCache(ctx context.Context, cfg *Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == backendNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == backendRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", cfg.Cache.Addr)
		return rc, nil
	}
	return newCache(cfg, false)
}

// serveStore builds the sheet store the config names.
func (c *CLI) serveStore(ctx context.Context, cfg *Config) (store.Store, error) {
	if cfg.Store.Backend == backendMongo {
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Store.URI,
			Database:   cfg.Store.Database,
			Collection: cfg.Store.Collection,
		})
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Logger.Info("using mongo sheet store", "database", cfg.Store.Database)
		return ms, nil
	}
	return store.NewMemoryStore(), nil
}
