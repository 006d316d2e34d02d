package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readtrack/internal/config"
	"github.com/mrlokans/readtrack/internal/database"
	"github.com/mrlokans/readtrack/internal/database/authors"
	"github.com/mrlokans/readtrack/internal/database/books"
	"github.com/mrlokans/readtrack/internal/database/progress"
	"github.com/mrlokans/readtrack/internal/database/publishers"
	"github.com/mrlokans/readtrack/internal/database/users"
	http_controllers "github.com/mrlokans/readtrack/internal/http"
	"github.com/mrlokans/readtrack/internal/scheduler"
	"github.com/mrlokans/readtrack/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Background work stops after the last request has been served
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// Run opens the database, starts background work and serves the API until a
// termination signal arrives.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting readtrack v%s", version)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.New(context.Background(), database.Options{
		URL:            cfg.Database.URL,
		MaxConnections: cfg.Database.MaxConnections,
		LogLevel:       database.ParseLogLevel(cfg.Database.LogLevel),
	})
	if err != nil {
		// connection and migration failures both end here
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Printf("Database ready (%s)", db.Dialect())

	authorRepo := authors.NewRepository()
	publisherRepo := publishers.NewRepository()
	bookRepo := books.NewRepository()
	userRepo := users.NewRepository()
	progressRepo := progress.NewRepository()

	var (
		taskClient    *tasks.Client
		taskCtxCancel context.CancelFunc
		stats         *scheduler.StatsScheduler
	)
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Tasks.DatabasePath, tasks.FromAppConfig(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}

		taskClient.Register(
			tasks.NewRecordProgressQueue(db),
			tasks.NewLibraryStatsQueue(db, tasks.DefaultCounters()),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		stats = scheduler.NewStatsScheduler(taskClient, cfg.Stats.Schedule)
		if err := stats.Start(taskCtx); err != nil {
			log.Printf("WARNING: library stats scheduler not started: %v", err)
		}
	} else {
		log.Printf("Task queue disabled; progress events will be refused")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:   db,
		Health:     db,
		Authors:    authorRepo,
		Publishers: publisherRepo,
		Books:      bookRepo,
		Users:      userRepo,
		Progress:   progressRepo,
		Version:    version,
	}
	if taskClient != nil {
		routerCfg.Queue = taskClient
		routerCfg.HealthChecks = []http_controllers.Check{{Name: "tasks", Pinger: taskClient}}
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if stats != nil {
			stats.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	Serve(router, cfg, onShutdown)
}
