package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"
	"github.com/unrolled/secure"

	"github.com/lostfound/moderation/config"
	"github.com/lostfound/moderation/internal/cache"
	"github.com/lostfound/moderation/internal/db"
	"github.com/lostfound/moderation/internal/handlers"
	"github.com/lostfound/moderation/internal/mq"
	"github.com/lostfound/moderation/internal/observability"
	"github.com/lostfound/moderation/internal/services"
	"github.com/lostfound/moderation/internal/storage"
	"github.com/lostfound/moderation/internal/store"
)

const statsCachePrefix = "lostfound:moderation:"

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	queue      *mq.MQ
	redis      *redis.Client
	objects    io.Closer
	logger     *slog.Logger
}

// Dependencies are the services routed by NewRouter.
type Dependencies struct {
	Items   *services.ItemService
	Users   *services.UserService
	Stats   *services.StatsService
	Exports *services.ExportService // nil disables /api/admin/exports
	Metrics *observability.Metrics
	// ActionsPerMinute caps status changes per client IP. Zero disables it.
	ActionsPerMinute int
	Production       bool
}

// New constructs a Server with its backends selected by cfg.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{logger: logger}

	var (
		itemRepo services.ItemRepository
		userRepo services.UserRepository
	)
	switch cfg.Store {
	case "postgres":
		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		s.db = dbConn
		itemRepo = store.NewItemRepository(dbConn)
		userRepo = store.NewUserRepository(dbConn)
	case "", "memory":
		itemRepo = store.NewMemoryItemRepository(store.DemoItems())
		userRepo = store.NewMemoryUserRepository(store.DemoUsers())
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	var statsCache services.StatsCache
	if cfg.Redis.Addr != "" {
		client, err := cache.New(ctx, cfg.Redis.Addr)
		if err != nil {
			_ = s.Shutdown()
			return nil, err
		}
		s.redis = client
		statsCache = cache.NewJSONCache(client, statsCachePrefix)
	}
	stats := services.NewStatsService(itemRepo, userRepo, statsCache, cfg.Redis.StatsTTL, logger)

	observers := []services.ChangeObserver{stats}
	backend, err := mq.NewBackend(ctx, cfg.MQ)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("init mq: %w", err)
	}
	if backend != nil {
		s.queue = mq.New(backend)
		observers = append(observers, services.NewEventPublisher(s.queue, cfg.MQ.Channel, logger))
	}

	var exports *services.ExportService
	objects, err := storage.NewBackend(ctx, cfg.Storage)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	if closer, ok := objects.(io.Closer); ok {
		s.objects = closer
	}
	if objects != nil {
		wrapped := storage.NewStorage(objects)
		if err := wrapped.EnsureBucket(ctx); err != nil {
			_ = s.Shutdown()
			return nil, fmt.Errorf("ensure export bucket: %w", err)
		}
		exports = services.NewExportService(itemRepo, userRepo, wrapped)
	}

	s.router = NewRouter(Dependencies{
		Items:            services.NewItemService(itemRepo, observers...),
		Users:            services.NewUserService(userRepo, observers...),
		Stats:            stats,
		Exports:          exports,
		Metrics:          observability.NewMetrics(),
		ActionsPerMinute: cfg.RateLimit.ActionsPerMinute,
		Production:       cfg.Environment == "production",
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server configured",
		slog.String("store", cfg.Store),
		slog.String("mq", cfg.MQ.Backend),
		slog.String("storage", cfg.Storage.Backend),
		slog.Bool("stats_cache", statsCache != nil),
	)
	return s, nil
}

// NewRouter builds the moderation API router.
func NewRouter(deps Dependencies) *chi.Mux {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        deps.Production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		secureMiddleware.Handler,
		deps.Metrics.Middleware,
	)

	var limiter func(http.Handler) http.Handler
	if deps.ActionsPerMinute > 0 {
		limiter = httprate.Limit(deps.ActionsPerMinute, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"too many moderation actions"}`))
			}),
		)
	}

	router.Get("/healthz", handlers.Healthz)
	router.Handle("/metrics", deps.Metrics.Handler())
	router.Route("/api/admin", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			handlers.ItemRouter(r, deps.Items, deps.Metrics, limiter)
		})
		r.Route("/users", func(r chi.Router) {
			handlers.UserRouter(r, deps.Users, deps.Metrics, limiter)
		})
		r.Get("/stats", handlers.NewStatsHandler(deps.Stats).GetStats)
		if deps.Exports != nil {
			r.Route("/exports", func(r chi.Router) {
				handlers.ExportRouter(r, deps.Exports)
			})
		}
	})

	return router
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("listening", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server and releases backends.
func (s *Server) Shutdown() error {
	var errs []error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if s.queue != nil {
		if err := s.queue.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.objects != nil {
		if err := s.objects.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
