package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/fastygo/taskdesk/internal/config"
	"github.com/fastygo/taskdesk/internal/infrastructure/database"
	"github.com/fastygo/taskdesk/internal/services/lifecycle"
	"github.com/fastygo/taskdesk/pkg/actionctx"
	"github.com/fastygo/taskdesk/pkg/logger"
	"github.com/fastygo/taskdesk/repository/sqldb"
	"github.com/fastygo/taskdesk/ui"
	authUC "github.com/fastygo/taskdesk/usecase/auth"
	taskUC "github.com/fastygo/taskdesk/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		File:     cfg.Logger.File,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	zapLogger = zapLogger.With(zap.String("app", cfg.AppName), zap.String("env", cfg.Environment))

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Register("logger", func(ctx context.Context) error {
		_ = zapLogger.Sync()
		return nil
	})

	appCtx, cancel := manager.Listen(context.Background())
	defer cancel()

	if err := database.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	db, err := database.Open(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("database connection failed", zap.Error(err))
	}
	manager.Register("database", func(ctx context.Context) error {
		return database.Close(db, zapLogger)
	})

	accountRepo := sqldb.NewAccountRepository(db)
	taskRepo := sqldb.NewTaskRepository(db)

	var hasher authUC.Hasher = authUC.NewBcryptHasher(cfg.Auth.BcryptCost)
	if cfg.Auth.PlaintextPasswords {
		zapLogger.Warn("storing passwords in plaintext")
		hasher = authUC.PlaintextHasher{}
	}

	authUseCase := authUC.New(accountRepo, hasher, zapLogger)
	taskUseCase := taskUC.New(taskRepo, taskUC.Options{DeleteByTitle: cfg.Tasks.DeleteByTitle}, zapLogger)

	zapLogger.Info("ui started", zap.String("driver", cfg.Database.Driver))
	runErr := ui.Run(appCtx, ui.Deps{
		Auth:    authUseCase,
		Tasks:   taskUseCase,
		Adapter: actionctx.NewAdapter(cfg.Context.ActionTimeout),
		Logger:  zapLogger,
	})
	if runErr != nil {
		zapLogger.Error("ui stopped with error", zap.Error(runErr))
	}

	if err := manager.Shutdown(context.Background()); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
	if runErr != nil {
		log.Printf("taskdesk: %v", runErr)
		os.Exit(1)
	}
}
