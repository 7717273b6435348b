package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"job-tracker-api/config"
	"job-tracker-api/internal/api/openapi"
	"job-tracker-api/internal/app"
	"job-tracker-api/internal/database"
	"job-tracker-api/internal/jobsearch"
	"job-tracker-api/internal/server"
	"job-tracker-api/internal/services"
	"job-tracker-api/internal/storage"
	"job-tracker-api/internal/storage/postgres"
	redisstore "job-tracker-api/internal/storage/redis"
	"job-tracker-api/internal/storage/sqlite"
	"job-tracker-api/internal/uploads"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// @title           Job Tracker API
// @version         1.0
// @description     Job application tracking with admin triage and an external job board proxy.
// @BasePath        /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Application stopped: %v", err)
	}
	log.Info("Application gracefully stopped.")
}

// stores groups the repositories of the selected backend.
type stores struct {
	applications storage.ApplicationRepository
	users        storage.UserRepository
	close        func()
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	var revoked storage.TokenRevocationStore
	if cfg.Redis.Addr != "" {
		redisClient, err := database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		revoked = redisstore.NewTokenStore(redisClient)
	} else {
		log.Warn("Redis address not configured, logout will not revoke tokens server-side")
	}

	resumeStore, err := uploads.NewStore(cfg.Uploads)
	if err != nil {
		return err
	}

	doc, err := openapi.Load(ctx)
	if err != nil {
		return err
	}

	validate := services.NewValidator()
	userService := services.NewUserService(st.users, revoked, validate, cfg.JWT.Secret, cfg.JWT.Expiration)
	if cfg.Admin.Email != "" {
		if err := userService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.FullName); err != nil {
			return fmt.Errorf("failed to ensure admin account: %w", err)
		}
	}
	if cfg.JobSearch.APIKey == "" {
		log.Warn("RAPID_API_KEY not set, global job search will fail")
	}

	application := &app.Application{
		Config:       cfg,
		Applications: services.NewApplicationService(st.applications, resumeStore, validate),
		Admin:        services.NewAdminService(st.applications, resumeStore, validate),
		JobSearch: services.NewJobSearchService(
			jobsearch.NewClient(cfg.JobSearch, nil), st.applications, st.users, validate),
		Users:   userService,
		Uploads: resumeStore,
		OpenAPI: doc,
	}

	srv := server.NewServer(application)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	return g.Wait()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.DB.Driver {
	case "sqlite":
		db, err := database.NewSQLite(cfg.DB)
		if err != nil {
			return nil, err
		}
		return &stores{
			applications: sqlite.NewApplicationRepo(db),
			users:        sqlite.NewUserRepo(db),
			close: func() {
				if err := sqlite.Close(db); err != nil {
					log.WithError(err).Warn("Failed to close sqlite database")
				}
			},
		}, nil
	default:
		pool, err := database.NewConnectionPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &stores{
			applications: postgres.NewApplicationRepo(pool),
			users:        postgres.NewUserRepo(pool),
			close:        pool.Close,
		}, nil
	}
}

func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.Log.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Log.Format == "json" || !cfg.IsDevelopment() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}
