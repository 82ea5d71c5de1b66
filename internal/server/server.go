package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/its-platform/apiserver/config"
	"github.com/its-platform/apiserver/internal/auth"
	"github.com/its-platform/apiserver/internal/db"
	"github.com/its-platform/apiserver/internal/events"
	"github.com/its-platform/apiserver/internal/handlers"
	"github.com/its-platform/apiserver/internal/middleware"
	"github.com/its-platform/apiserver/internal/services"
	"github.com/its-platform/apiserver/internal/storage"
	"github.com/its-platform/apiserver/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Server wraps the HTTP server, router, and shared resources.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	database   *mongo.Database
	publisher  *events.Publisher
	logger     *zap.Logger
}

// New constructs a Server with its full dependency graph: store
// connection, repositories, services, and routers.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		_ = db.Close(context.Background(), database)
		return nil, err
	}

	tokens, err := auth.NewTokenProvider(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		_ = db.Close(context.Background(), database)
		return nil, err
	}

	uploads, err := buildStorage(ctx, cfg)
	if err != nil {
		_ = db.Close(context.Background(), database)
		return nil, err
	}

	publisher, err := buildPublisher(ctx, cfg, logger)
	if err != nil {
		_ = db.Close(context.Background(), database)
		return nil, err
	}

	userRepo := store.NewUserRepository(database)
	courseRepo := store.NewCourseRepository(database)
	topicRepo := store.NewTopicRepository(database)
	materialRepo := store.NewMaterialRepository(database)
	historyRepo := store.NewHistoryRepository(database)

	authService := services.NewAuthService(userRepo, tokens)
	courseService := services.NewCourseService(courseRepo)
	topicService := services.NewTopicService(topicRepo, courseRepo)
	contentService := services.NewContentService(materialRepo, historyRepo, uploads, publisher)

	requireAuth := handlers.RequireAuth(tokens, userRepo)

	router := chi.NewRouter()
	router.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.RequestLogger(logger),
		chimw.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authService, requireAuth, logger)
	})
	router.Route("/courses", func(r chi.Router) {
		handlers.CourseRouter(r, courseService, requireAuth, logger)
	})
	router.Route("/topics", func(r chi.Router) {
		handlers.TopicRouter(r, topicService, requireAuth, logger)
	})
	router.Route("/content", func(r chi.Router) {
		handlers.ContentRouter(r, contentService, requireAuth, logger)
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		database:   database,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown and closes shared resources.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if closeErr := s.publisher.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if closeErr := db.Close(ctx, s.database); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// buildStorage selects the upload backend from config.
func buildStorage(ctx context.Context, cfg config.Config) (*storage.Storage, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		backend, err := storage.NewLocalClient(cfg.Upload.Dir)
		if err != nil {
			return nil, err
		}
		return storage.NewStorage(backend), nil
	case "minio":
		backend, err := storage.NewMinioClient(cfg.Storage.Minio)
		if err != nil {
			return nil, err
		}
		return storage.NewStorage(backend), nil
	case "gcs":
		backend, err := storage.NewGCSClient(ctx, cfg.Storage.GCS)
		if err != nil {
			return nil, err
		}
		return storage.NewStorage(backend), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// buildPublisher selects the content-event backend from config. The
// "none" backend returns a publisher that drops every event.
func buildPublisher(ctx context.Context, cfg config.Config, logger *zap.Logger) (*events.Publisher, error) {
	switch cfg.Events.Backend {
	case "", "none":
		return events.NewPublisher(nil, cfg.Events.Channel, logger), nil
	case "rabbitmq":
		backend, err := events.NewRabbitMQBackend(cfg.Events.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return events.NewPublisher(backend, cfg.Events.Channel, logger), nil
	case "pubsub":
		backend, err := events.NewPubSubBackend(ctx, cfg.Events.PubSub)
		if err != nil {
			return nil, err
		}
		return events.NewPublisher(backend, cfg.Events.Channel, logger), nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Events.Backend)
	}
}
