package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/getmentor/mentor-match-api/config"
	"github.com/getmentor/mentor-match-api/internal/cache"
	"github.com/getmentor/mentor-match-api/internal/handlers"
	"github.com/getmentor/mentor-match-api/internal/middleware"
	"github.com/getmentor/mentor-match-api/internal/repository"
	"github.com/getmentor/mentor-match-api/internal/services"
	"github.com/getmentor/mentor-match-api/pkg/jwt"
	"github.com/getmentor/mentor-match-api/pkg/logger"
	"github.com/getmentor/mentor-match-api/pkg/metrics"
	"github.com/getmentor/mentor-match-api/pkg/objectstore"
	"github.com/getmentor/mentor-match-api/pkg/profiling"
	"github.com/getmentor/mentor-match-api/pkg/retry"
	"github.com/getmentor/mentor-match-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// newImageRepository picks object storage when a bucket is configured
func newImageRepository(cfg *config.Config) (repository.ImageRepositoryInterface, error) {
	if !cfg.UseObjectStorage() {
		logger.Info("Avatar storage: in-memory")
		return repository.NewMemoryImageRepository(), nil
	}

	client, err := objectstore.NewStorageClient(objectstore.Options{
		AccessKeyID:     cfg.ImageStorage.AccessKeyID,
		SecretAccessKey: cfg.ImageStorage.SecretAccessKey,
		BucketName:      cfg.ImageStorage.BucketName,
		Endpoint:        cfg.ImageStorage.Endpoint,
		Region:          cfg.ImageStorage.Region,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Avatar storage: object storage",
		zap.String("bucket", cfg.ImageStorage.BucketName))
	return repository.NewObjectImageRepository(client, retry.ObjectStorageConfig()), nil
}

// @title Mentor-Mentee Matching API
// @version 1.0.0
// @description API for matching mentors and mentees in a mentoring platform
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Mentor Match API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.Bool("strict_transitions", cfg.Matching.StrictTransitions),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (no-op unless enabled)
	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, profiling.Labels{
		ServiceName: cfg.Observability.ServiceName,
		Namespace:   cfg.Observability.ServiceNamespace,
		Version:     cfg.Observability.ServiceVersion,
		InstanceID:  cfg.Observability.ServiceInstanceID,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.Init(cfg.Observability.ServiceName, cfg.Observability.ServiceVersion)
	metrics.RecordInfrastructureMetrics()

	// Stores
	users := repository.NewUserRepository()
	ledger := repository.NewMatchRequestRepository(users, cfg.Matching.StrictTransitions)
	images, err := newImageRepository(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize avatar storage", zap.Error(err))
	}
	directoryCache := cache.NewDirectoryCache(cfg.Cache.DirectoryTTLSeconds)

	tokenManager := jwt.NewTokenManager(jwt.Options{
		Secret:         cfg.Session.JWTSecret,
		Issuer:         cfg.Session.JWTIssuer,
		Audience:       cfg.Session.JWTAudience,
		TTL:            time.Duration(cfg.Session.TTLMinutes) * time.Minute,
		VerifyAudience: cfg.Session.VerifyAudience,
	})

	// Initialize services
	authService := services.NewAuthService(users, tokenManager, cfg)
	profileService := services.NewProfileService(users, images, cfg)
	mentorService := services.NewMentorService(users, directoryCache)
	matchRequestService := services.NewMatchRequestService(ledger)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - SECURITY: Only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", "WWW-Authenticate"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiter cleanup loops stop with the server
	limiterCtx, stopLimiters := context.WithCancel(context.Background())
	defer stopLimiters()

	generalRateLimiter := middleware.NewRateLimiter(limiterCtx, 100, 200) // 100 req/sec, burst of 200
	authRateLimiter := middleware.NewRateLimiter(limiterCtx, 1, 10)       // 1 req/sec, burst of 10 (credential stuffing)

	handlers.RegisterDocsRoutes(router, generalRateLimiter.Middleware())

	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), handlers.NewHealthHandler(cfg.Observability.ServiceVersion).Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(api, handlers.Routes{
		Sessions:      authService,
		AuthLimiter:   authRateLimiter,
		APILimiter:    generalRateLimiter,
		Auth:          handlers.NewAuthHandler(authService),
		Profile:       handlers.NewProfileHandler(profileService),
		Mentors:       handlers.NewMentorHandler(mentorService),
		MatchRequests: handlers.NewMatchRequestHandler(matchRequestService),
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
