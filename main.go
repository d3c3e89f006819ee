package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/blogem/weblog/authenticator"
	"github.com/blogem/weblog/config"
	"github.com/blogem/weblog/controllers"
	"github.com/blogem/weblog/database"
	"github.com/blogem/weblog/dispatcher"
	"github.com/blogem/weblog/identity"
	authmiddleware "github.com/blogem/weblog/middleware"
	"github.com/blogem/weblog/repositories"
	"github.com/blogem/weblog/services"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := cfg.NewLogger()
	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("Web log service stopped")
	}
}

// app is the wired service
type app struct {
	router     *chi.Mux
	dispatcher *dispatcher.Dispatcher
}

// newApp wires every component on top of an open database
func newApp(ctx context.Context, cfg *config.Config, db *sql.DB, logger *logrus.Logger) (*app, error) {
	// Initialize repositories
	repos := repositories.NewRepositories(db, cfg.Database.Driver)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := dispatcher.NewMetrics(registry)

	// Asynchronous persistence
	d := dispatcher.New(repos.WebLog, cfg.DispatcherSettings(), logger, metrics)

	decoder, err := newDecoder(ctx, cfg, logger)
	if err != nil {
		_ = d.Shutdown()
		return nil, err
	}

	resolver, err := identity.NewResolver(decoder, cfg.ResolverSettings(), logger)
	if err != nil {
		_ = d.Shutdown()
		return nil, fmt.Errorf("failed to create identity resolver: %w", err)
	}

	interceptor := authmiddleware.NewWebLogInterceptor(resolver, d, logger,
		authmiddleware.WithTokenHeader(cfg.Auth.TokenHeader))

	// Initialize services
	srvs, err := services.NewServices(repos, cfg.Cache.Size)
	if err != nil {
		_ = d.Shutdown()
		return nil, err
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, logger)

	return &app{
		router:     setupRouter(cfg, ctrl, interceptor, decoder, registry, logger),
		dispatcher: d,
	}, nil
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.InitializeDatabase(cfg.Database.Driver, cfg.Database.DSN, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	a, err := newApp(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithFields(logrus.Fields{
			"port":   cfg.Server.Port,
			"driver": cfg.Database.Driver,
		}).Info("Web log service starting")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()

	// Drain pending web logs once no request can add more
	if derr := a.dispatcher.Shutdown(); derr != nil {
		logger.WithError(derr).Warn("Web log dispatcher did not drain")
	}
	logger.Info("Web log service stopped")
	return err
}

// newDecoder builds the bearer token decoder. Without a secret or issuer
// tokens are ignored and actors come from request data only.
func newDecoder(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (authenticator.TokenDecoder, error) {
	settings := cfg.AuthenticatorSettings()
	if settings.Secret == "" && settings.IssuerURL == "" {
		logger.Warn("No token secret or issuer configured, bearer tokens are ignored")
		return nil, nil
	}

	decoder, err := authenticator.NewDecoder(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token decoder: %w", err)
	}
	return decoder, nil
}

// setupRouter configures all routes
func setupRouter(cfg *config.Config, ctrl *controllers.Controllers, interceptor *authmiddleware.WebLogInterceptor, decoder authenticator.TokenDecoder, registry *prometheus.Registry, logger *logrus.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger, NoColor: true}))
	r.Use(middleware.Recoverer)
	if cfg.Server.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}

	// Routes listed under [operations] are audited wherever they are mounted
	r.Use(interceptor.Registered(cfg.Operations))

	// PUBLIC ROUTES (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "weblog"}`)
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// PROTECTED ROUTES (bearer token required)
	r.Route("/weblog", func(r chi.Router) {
		if cfg.Auth.RequireToken && decoder != nil {
			r.Use(authmiddleware.RequireToken(decoder, cfg.Auth.TokenHeader, cfg.Auth.TokenPrefix, logger))
		}

		// Reading the audit trail is itself an audited operation
		r.With(interceptor.Handler("list web logs")).Get("/list", ctrl.WebLog.List)
		r.With(interceptor.Handler("list web logs by actor")).Get("/listByActor", ctrl.WebLog.ListByActor)
		r.With(interceptor.Handler("get web log")).Get("/{id}", ctrl.WebLog.GetItem)
	})

	return r
}
