package styrene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/TheOfficialSeb/Styrene/internal/dev"
	"github.com/TheOfficialSeb/Styrene/pkg/middleware"
	"github.com/TheOfficialSeb/Styrene/pkg/pathpattern"
	"github.com/TheOfficialSeb/Styrene/pkg/router"
	"github.com/TheOfficialSeb/Styrene/pkg/static"
)

// staticParam is the wildcard capture the static route uses.
const staticParam = "path"

// App is the application entry point. It embeds the router, so routes
// are registered on the App directly:
//
//	app := styrene.New(cfg)
//	app.Get("/health", health)
//	http.ListenAndServe(":8080", app.Handler())
type App struct {
	*router.Router

	config   Config
	logger   *slog.Logger
	registry *prometheus.Registry
	reload   *dev.ReloadServer
	watcher  *dev.Watcher
	static   http.Handler

	handlerOnce sync.Once
	handler     http.Handler
}

// New creates an application with the given configuration.
func New(cfg Config) *App {
	cfg.applyDefaults()
	logger := cfg.Logger

	a := &App{
		Router: router.New(
			router.WithLogger(logger),
			router.WithPatternOptions(cfg.PatternOptions...),
		),
		config: cfg,
		logger: logger,
	}

	a.Use(middleware.Logger(logger))

	if cfg.Metrics.Enabled {
		a.registry = cfg.Metrics.Registry
		if a.registry == nil {
			a.registry = prometheus.NewRegistry()
			a.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		a.Use(middleware.Metrics(
			middleware.WithRegistry(a.registry),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		))
	}

	if cfg.Tracing.Enabled {
		a.Use(middleware.Tracing(middleware.WithTracerName(cfg.Tracing.TracerName)))
	}

	if cfg.Dev.Enabled {
		a.reload = dev.NewReloadServer(logger)
		if cfg.Static.Dir != "" {
			a.watcher = dev.NewWatcher(dev.WatcherConfig{
				Paths:    []string{cfg.Static.Dir},
				Ignore:   cfg.Dev.Ignore,
				Interval: cfg.Dev.Interval,
			})
			a.watcher.OnChange(a.reload.Forward)
		}
	}

	a.static = a.newStaticHandler()
	return a
}

func (a *App) newStaticHandler() http.Handler {
	sc := a.config.Static
	source := sc.Source
	if source == nil {
		if sc.Dir == "" {
			return nil
		}
		source = static.NewDirSource(os.DirFS(sc.Dir))
	}

	cfg := static.Config{
		Source:       source,
		Prefix:       sc.Prefix,
		Param:        staticParam,
		Index:        sc.Index,
		Fallback:     sc.Fallback,
		CacheControl: sc.CacheControl,
		Headers:      sc.Headers,
		Logger:       a.logger,
	}
	if a.config.Dev.Enabled {
		cfg.Inject = []byte(dev.ClientScript())
	}
	return static.New(cfg)
}

// staticTemplate returns the route template files are mounted at.
func staticTemplate(prefix string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	return pathpattern.Escape(prefix) + "{/*" + staticParam + "}"
}

// Handler returns the root handler. The first call mounts static files
// as a router fallback, so every route and Any route wins over a file.
func (a *App) Handler() http.Handler {
	a.handlerOnce.Do(func() {
		if a.static != nil {
			template := staticTemplate(a.config.Static.Prefix)
			if err := a.Fallback(http.MethodGet, template, a.static); err != nil {
				a.logger.Error("static mount failed", slog.String("template", template), slog.Any("error", err))
			}
		}

		r := chi.NewRouter()
		r.Use(chimw.RequestID)
		r.Use(chimw.Recoverer)
		r.Use(middleware.CanonicalPath)

		if a.registry != nil {
			r.Handle(a.config.Metrics.Path, promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
		}
		if a.reload != nil {
			r.Get(dev.ReloadPath, a.reload.HandleWebSocket)
		}
		r.Handle("/*", a.Router)

		a.handler = r
	})
	return a.handler
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Handler().ServeHTTP(w, r)
}

// Config returns the application configuration with defaults applied.
func (a *App) Config() Config {
	return a.config
}

// Registry returns the metrics registry, or nil when metrics are off.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// Run listens on the configured address and serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.config.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully. The
// dev watcher, if enabled, runs alongside the server.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      a.Handler(),
		ReadTimeout:  a.config.ReadTimeout,
		WriteTimeout: a.config.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")

		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.config.ShutdownTimeout)
		defer cancel()
		if a.reload != nil {
			a.reload.Close()
		}
		return srv.Shutdown(sctx)
	})

	if a.watcher != nil {
		g.Go(func() error {
			if err := a.watcher.Start(gctx); gctx.Err() == nil {
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		a.logger.Info("server shutdown complete")
	}
	return err
}
