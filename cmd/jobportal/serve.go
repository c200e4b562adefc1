package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/analysis"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/cache"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/config"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/db"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/extract"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/metrics"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/scoring"
	"github.com/phoenixdev100/Job-portal-with-resume-builder/internal/server"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the HTTP server exposing the accounts, jobs and resume analysis
endpoints. Requires DATABASE_URL and JWT_SECRET; REDIS_URL enables the job
listing cache.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "Apply the database schema before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	ctx := cmd.Context()
	database, err := db.ConnectWithRetry(ctx, cfg.DatabaseURL, db.RetryOptions{
		Attempts: cfg.DBConnectTries,
		Delay:    cfg.DBRetryDelay,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if serveMigrate {
		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	jobCache := openCache(ctx, cfg, logger, m)
	defer func() { _ = jobCache.Close() }()

	analyzer := analysis.NewService(extract.New(), scoring.NewScorer(scoring.DefaultCatalog()), analysis.Options{
		UploadDir: cfg.UploadDir,
		MaxBytes:  cfg.MaxUploadBytes,
		Logger:    logger.Named("analysis"),
		Metrics:   m,
	})

	srv, err := server.New(cfg, server.Deps{
		Users:     database,
		Employers: database,
		Jobs:      database,
		Analyzer:  analyzer,
		Cache:     jobCache,
		JWT:       server.NewJWTService(jwtCfg),
		Passwords: passwords,
		Logger:    logger,
		Metrics:   m,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// openCache connects to Redis when configured. The server runs uncached
// when Redis is unset or unreachable.
func openCache(ctx context.Context, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) *cache.JobCache {
	if cfg.RedisURL == "" || cfg.JobCacheTTL == 0 {
		logger.Info("job cache disabled")
		return nil
	}
	c, err := cache.Open(ctx, cfg.RedisURL, cfg.JobCacheTTL, logger.Named("cache"), m)
	if err != nil {
		logger.Warn("job cache unavailable, continuing without it", zap.Error(err))
		return nil
	}
	logger.Info("job cache enabled", zap.Duration("ttl", cfg.JobCacheTTL))
	return c
}
