// Package main is the entry point for the automated blog server.
// It loads configuration, connects to services, starts the daily generation
// schedule and serves the HTTP API with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"autoblog/internal/ai"
	"autoblog/internal/cache"
	"autoblog/internal/config"
	"autoblog/internal/database"
	"autoblog/internal/generator"
	"autoblog/internal/handlers"
	"autoblog/internal/middleware"
	"autoblog/internal/pipeline"
	"autoblog/internal/render"
	"autoblog/internal/router"
	"autoblog/internal/scheduler"
	"autoblog/internal/store"
)

func main() {
	// A missing .env is fine; real environment variables always win.
	_ = godotenv.Load()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON elsewhere.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"schedule", cfg.GenerationSchedule,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	blogStore := store.NewBlogStore(db)

	// Valkey is optional: without it reads hit the database directly and
	// only the in-process run guard applies.
	var (
		blogCache *cache.BlogCache
		genLock   *cache.Lock
	)
	if cfg.CacheEnabled() {
		var valkeyClient *redis.Client
		valkeyClient, err = cache.ConnectValkey(context.Background(), cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		blogCache = cache.NewBlogCache(valkeyClient, cache.DefaultBlogTTL)
		// Migrations may have changed the stored rows; start from an empty cache.
		blogCache.InvalidateAll(context.Background())
		genLock = cache.NewLock(valkeyClient, "lock:"+scheduler.JobID, cache.DefaultLockTTL)
	} else {
		slog.Warn("valkey not configured, caching disabled")
	}

	// Initialize the AI provider registry with all configured providers.
	// Generation settings are passed through exactly as config loaded them.
	shared := ai.ProviderConfig{
		Temperature: cfg.AITemperature,
		MaxTokens:   cfg.AIMaxTokens,
		MaxRetries:  cfg.AIMaxRetries,
	}
	withKey := func(key, model, baseURL string) ai.ProviderConfig {
		c := shared
		c.APIKey, c.Model, c.BaseURL = key, model, baseURL
		return c
	}
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"groq":   withKey(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL),
		"openai": withKey(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL),
		"claude": withKey(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.ClaudeBaseURL),
	})

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	pipe := pipeline.New(aiRegistry, pipeline.WithImageBaseURL(cfg.ImageBaseURL))
	slog.Info("generation pipeline ready", "steps", pipe.StepNames())

	triggerOpts := []generator.Option{}
	if blogCache != nil {
		triggerOpts = append(triggerOpts,
			generator.WithInvalidator(blogCache),
			generator.WithLocker(genLock),
		)
	}
	trigger := generator.NewTrigger(pipe, blogStore, triggerOpts...)

	// Daily generation job, local time.
	sched := scheduler.New(time.Local)
	if err := sched.Add(scheduler.JobID, cfg.GenerationSchedule, trigger.RunScheduled); err != nil {
		slog.Error("failed to schedule generation", "error", err)
		os.Exit(1)
	}
	sched.Start()

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	adminLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer adminLimiter.Stop()

	publicHandlers := handlers.NewPublic(blogStore, blogCache, renderer)
	adminHandlers := handlers.NewAdmin(trigger, sched)

	r := router.New(publicHandlers, adminHandlers, router.Options{
		AdminKey:     cfg.AdminAPIKey,
		CORSOrigins:  cfg.CORSOrigins,
		AdminLimiter: adminLimiter,
		TrustProxy:   cfg.TrustProxy,
	})

	// WriteTimeout must cover a synchronous generation run: five LLM calls
	// with retries.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sched.Stop(ctx); err != nil {
		slog.Warn("scheduler did not stop cleanly", "error", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
