package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/unohub/unohub/internal/config"
	"github.com/unohub/unohub/internal/db"
	"github.com/unohub/unohub/internal/filestore"
	"github.com/unohub/unohub/internal/handler"
	"github.com/unohub/unohub/internal/job"
	"github.com/unohub/unohub/internal/middleware"
	"github.com/unohub/unohub/internal/repo"
	"github.com/unohub/unohub/internal/schedule"
	"github.com/unohub/unohub/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "unohub",
		Short: "unohub backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run unohub server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			database, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(database); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, database)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, database *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
	)

	userRepo := repo.NewUserRepo(database)
	pageRepo := repo.NewPageRepo(database)
	txRepo := repo.NewTransactionRepo(database)
	recurringRepo := repo.NewRecurringRepo(database)
	processedRepo := repo.NewProcessedMonthRepo(database)
	materializeRepo := repo.NewMaterializeRepo(database)
	todoRepo := repo.NewTodoRepo(database)
	eventRepo := repo.NewEventRepo(database)
	habitRepo := repo.NewHabitRepo(database)
	habitLogRepo := repo.NewHabitLogRepo(database)
	dietProfileRepo := repo.NewDietProfileRepo(database)
	dietMealRepo := repo.NewDietMealRepo(database)
	dietWaterRepo := repo.NewDietWaterRepo(database)
	dietFoodRepo := repo.NewDietFoodRepo(database)

	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	pageService := service.NewPageService(pageRepo)
	financeService := service.NewFinanceService(txRepo, recurringRepo, processedRepo, materializeRepo)
	todoService := service.NewTodoService(todoRepo)
	eventService := service.NewEventService(eventRepo)
	habitService := service.NewHabitService(habitRepo, habitLogRepo)
	dietService := service.NewDietService(dietProfileRepo, dietMealRepo, dietWaterRepo, dietFoodRepo)
	exportService := service.NewExportService(pageRepo)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Pages:     handler.NewPageHandler(pageService),
		Finance:   handler.NewFinanceHandler(financeService),
		Todos:     handler.NewTodoHandler(todoService),
		Events:    handler.NewEventHandler(eventService),
		Habits:    handler.NewHabitHandler(habitService),
		Diet:      handler.NewDietHandler(dietService),
		Export:    handler.NewExportHandler(exportService),
		Files:     handler.NewFileHandler(store, cfg.UploadLimit),
		JWTSecret: []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllow),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if !cfg.Schedule.DisableRecurringJob {
		if err := scheduler.AddJob(job.NewRecurringMaterializeJob(recurringRepo, financeService), cfg.Schedule.RecurringSpec); err != nil {
			return fmt.Errorf("schedule recurring job: %w", err)
		}
	}
	if !cfg.Schedule.DisablePurgeJob {
		if err := scheduler.AddJob(job.NewArchivePurgeJob(pageService, cfg.Schedule.ArchiveMaxAgeDays), cfg.Schedule.ArchivePurgeSpec); err != nil {
			return fmt.Errorf("schedule purge job: %w", err)
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
