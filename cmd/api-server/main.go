package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vantagefin/vantage/internal/auth"
	"github.com/vantagefin/vantage/internal/cache"
	"github.com/vantagefin/vantage/internal/config"
	"github.com/vantagefin/vantage/internal/database"
	"github.com/vantagefin/vantage/internal/events"
	"github.com/vantagefin/vantage/internal/handlers"
	"github.com/vantagefin/vantage/internal/logger"
	"github.com/vantagefin/vantage/internal/middleware"
	"github.com/vantagefin/vantage/internal/predictor"
	vredis "github.com/vantagefin/vantage/internal/redis"
	"github.com/vantagefin/vantage/internal/service"
	"github.com/vantagefin/vantage/internal/storage"
)

func main() {
	log := logger.New("api-server")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	if err := database.RunMigrations(ctx, cfg.Database.PrimaryDSN); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}

	dbManager, err := database.NewDBManager(ctx, database.Config{
		PrimaryDSN:      cfg.Database.PrimaryDSN,
		ReplicaDSNs:     cfg.Database.ReplicaDSNs,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer dbManager.Close()

	redisClient, err := vredis.NewRedisClient(ctx, vredis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
		log.Warn("JWT_SECRET not set, using default (insecure for production)")
	}
	jwtManager := auth.NewJWTManager(jwtSecret, cfg.Auth.TokenTTL)

	userStore := storage.NewPostgresUserStore(dbManager)
	portfolioStore := storage.NewPostgresPortfolioStore(dbManager)

	userService := service.NewUserService(userStore)
	portfolioService := service.NewPortfolioService(portfolioStore)

	predictionCache := cache.NewMultiTierCache(cfg.Cache.L1Capacity, redisClient.GetClient(), cfg.Cache.L2TTL)
	producer := events.NewPredictionProducer(redisClient.GetClient(), cfg.Redis.StreamName)

	runner := predictor.NewScriptRunner(cfg.Predictor.PythonPath, cfg.Predictor.ScriptPath)
	pool := predictor.NewPool(predictor.Config{
		Timeout:   cfg.Predictor.Timeout,
		PoolSize:  cfg.Predictor.PoolSize,
		QueueSize: cfg.Predictor.QueueSize,
	}, runner)
	pool.Start()
	defer pool.Stop()

	sessionAuth := middleware.NewSessionAuth(jwtManager, cfg.Auth.CookieName)
	rateLimiter := middleware.NewRateLimiter(redisClient.GetClient(), cfg.RateLimit.Requests, cfg.RateLimit.Window)

	authHandler := handlers.NewAuthHandler(userService, jwtManager, handlers.CookieConfig{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure,
	})
	profileHandler := handlers.NewProfileHandler(userService, cfg.Auth.CookieName)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	insightsHandler := handlers.NewInsightsHandler(portfolioService, pool, predictionCache, producer, cfg.Predictor.DefaultTickers)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.Server.CORSOrigin))
	r.Use(middleware.RequestLogger(logger.New("http")))
	r.Use(rateLimiter.Middleware)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := redisClient.Ping(req.Context()); err != nil {
			log.Error("Health check failed: %v", err)
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}

		depth, err := producer.StreamLength(req.Context())
		if err != nil {
			depth = -1
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","prediction_events":%d}`, depth)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.RequireAuth)

			r.Get("/dashboard", profileHandler.Dashboard)
			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpdateProfile)
			r.Get("/settings", profileHandler.GetSettings)
			r.Put("/settings", profileHandler.UpdateSettings)

			r.Post("/portfolio", portfolioHandler.Create)
			r.Get("/portfolio", portfolioHandler.Get)

			r.Post("/predictions-ml", insightsHandler.Predictions)
			r.Post("/run-ml", insightsHandler.RunML)
			r.Get("/explainable-ai-ml", insightsHandler.ExplainableAI)
			r.Get("/nlp-analysis-ml", insightsHandler.NLPAnalysis)
			r.Get("/stress-testing-ml", insightsHandler.StressTesting)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("API server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown: %v", err)
	}
	log.Info("API server stopped")
}
