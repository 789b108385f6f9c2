package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
	timesheetService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/timesheet"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.App.AutoMigrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		slog.Info("Database schema applied")
	}

	dailyRecordRepo := postgresql.NewDailyRecordRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	jobRepo := postgresql.NewJobRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.ClockSkew)
	timesheetSvc := timesheetService.NewTimesheetService(
		dailyRecordRepo,
		workScheduleRepo,
		jobRepo,
		cfg.Timesheet.QuotaPolicy,
		cfg.Timesheet.Location,
	)

	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			Version:        version,
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
		},
		JWTService,
		timesheetHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "timezone", cfg.Timesheet.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
