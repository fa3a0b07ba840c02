package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"cinehub/database"
	"cinehub/internal/cache"
	"cinehub/internal/config"
	"cinehub/internal/http-api/handler"
	"cinehub/internal/http-api/middleware"
	"cinehub/internal/http-api/repository"
	"cinehub/internal/http-api/service"
	"cinehub/internal/mailer"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// The rating cache is optional: a dead Redis means slower title
	// listings, not a dead API.
	ratings, err := cache.NewRatingsCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("redis unavailable, running without rating cache", "error", err)
		ratings = nil
	}

	mail := mailer.New(cfg, logger)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := service.NewAuthService(userRepo, mail, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, reviewRepo, ratings)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, ratings)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// Unregistered verbs on known paths (PUT in particular) must answer
	// 405, not 404.
	router.HandleMethodNotAllowed = true

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.Authenticate(authService)
	adminOnly := middleware.RequireAdmin()
	authRate := middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthenticateOptional(authService))

	handler.NewAuthHandler(authService).RegisterRoutes(api, authRate)
	handler.NewUserHandler(userService).RegisterRoutes(api, authRequired, adminOnly)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(api, authRequired, adminOnly)
	handler.NewGenreHandler(genreService).RegisterRoutes(api, authRequired, adminOnly)
	handler.NewTitleHandler(titleService).RegisterRoutes(api, authRequired, adminOnly)
	handler.NewReviewHandler(reviewService).RegisterRoutes(api, authRequired)
	handler.NewCommentHandler(commentService).RegisterRoutes(api, authRequired)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		logger.Info("api server listening", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("api server stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
