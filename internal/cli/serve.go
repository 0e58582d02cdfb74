package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/Andre-Pham/FamApp-sub000/internal/server"
	"github.com/Andre-Pham/FamApp-sub000/pkg/cache"
	"github.com/Andre-Pham/FamApp-sub000/pkg/observability"
	"github.com/Andre-Pham/FamApp-sub000/pkg/pipeline"
	"github.com/Andre-Pham/FamApp-sub000/pkg/store"
)

const (
	defaultAddr        = "127.0.0.1:8080"
	defaultShutdownTTL = 10 * time.Second
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr      string
	backend   string
	dataDir   string
	redisAddr string
	mongoURI  string
	cache     string
	timeout   time.Duration
	noMetrics bool
}

// Layout cache choices for the serve command.
const (
	serveCacheNone  = "none"
	serveCacheFile  = "file"
	serveCacheRedis = "redis"
)

// serveCommand creates the serve command that exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      defaultAddr,
		backend:   store.BackendFile,
		redisAddr: "localhost:6379",
		mongoURI:  "mongodb://localhost:27017",
		cache:     serveCacheNone,
		timeout:   30 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine and family store over HTTP",
		Long: `Serve the layout engine and family store over HTTP.

Families can be posted for a one-off layout or stored by id and laid out
later. Stored families live in one of these backends:

  memory  lost on restart
  file    one JSON file per family (default)
  redis   one key per family
  mongo   one document per family

Computed layouts can be cached with --cache file (under the user cache dir)
or --cache redis (shared through --redis-addr).

Prometheus metrics are served on /metrics unless --no-metrics is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.backend, "store", opts.backend, "family store: "+strings.Join(store.Backends, ", "))
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "file store directory (default: <data dir>/families)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "Redis address for --store redis")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB URI for --store mongo")
	cmd.Flags().StringVar(&opts.cache, "cache", opts.cache, "layout cache: none, file, redis")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}

// storeConfig resolves the store settings, filling in the default data dir.
func (o serveOpts) storeConfig() (store.Config, error) {
	cfg := store.Config{
		Backend:   o.backend,
		Dir:       o.dataDir,
		RedisAddr: o.redisAddr,
		MongoURI:  o.mongoURI,
	}
	if cfg.Backend == store.BackendFile && cfg.Dir == "" {
		dir, err := dataDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.Dir = filepath.Join(dir, "families")
	}
	return cfg, nil
}

// openCache creates the layout cache selected by --cache. A nil cache means
// caching is off.
func (o serveOpts) openCache(ctx context.Context) (cache.Cache, error) {
	switch o.cache {
	case "", serveCacheNone:
		return nil, nil
	case serveCacheFile:
		dir, err := cacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case serveCacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: o.redisAddr})
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache %q (want none, file or redis)", o.cache)
	}
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	lc, err := opts.openCache(ctx)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(logger)
	if lc != nil {
		defer lc.Close()
		runner = pipeline.NewCachedRunner(logger, lc)
	}

	cfg, err := opts.storeConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	srvCfg := server.Config{
		Store:   st,
		Runner:  runner,
		Logger:  logger,
		Timeout: opts.timeout,
	}
	if !opts.noMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := observability.NewMetrics(reg)
		observability.SetPipelineHooks(m)
		observability.SetStoreHooks(m)
		observability.SetHTTPHooks(m)
		defer observability.Reset()
		srvCfg.Metrics = m.Handler()
	}

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.New(srvCfg).Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	printSuccess("Serving on %s", StyleHighlight.Render("http://"+opts.addr))
	printKeyValue("Store", cfg.Backend)
	printKeyValue("Cache", opts.cache)
	if cfg.Backend == store.BackendFile {
		printKeyValue("Directory", cfg.Dir)
	}
	if !opts.noMetrics {
		printKeyValue("Metrics", "http://"+opts.addr+"/metrics")
	}

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTTL)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return ctx.Err()
}
