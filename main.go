package main

import (
	"context"
	"net/http"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/evergreenwebsolutions/onboarding/internal/config"
	"github.com/evergreenwebsolutions/onboarding/internal/db"
	"github.com/evergreenwebsolutions/onboarding/internal/gelf"
	"github.com/evergreenwebsolutions/onboarding/internal/handler"
	"github.com/evergreenwebsolutions/onboarding/internal/mailer"
	"github.com/evergreenwebsolutions/onboarding/internal/middleware"
	"github.com/evergreenwebsolutions/onboarding/internal/notify"
	"github.com/evergreenwebsolutions/onboarding/internal/repository"
	"github.com/evergreenwebsolutions/onboarding/internal/router"
	"github.com/evergreenwebsolutions/onboarding/internal/service"
	"github.com/evergreenwebsolutions/onboarding/internal/storage"
)

func main() {
	cfg := config.Load()

	log := buildLogger(cfg.GelfAddr)
	defer log.Sync()

	ctx := context.Background()

	// Connect to Postgres and migrate
	gdb, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	// Blob storage backend
	var store storage.Store
	var filesDir string
	if cfg.StorageBackend == "s3" {
		s3, err := storage.NewS3(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			log.Fatal("failed to init s3 storage", zap.Error(err))
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Warn("bucket check failed", zap.Error(err))
		}
		store = s3
		log.Info("blob storage: s3", zap.String("bucket", cfg.S3Bucket))
	} else {
		fs, err := storage.NewFilesystem(cfg.FilesDir, cfg.PublicBaseURL+"/files")
		if err != nil {
			log.Fatal("failed to init filesystem storage", zap.Error(err))
		}
		store = fs
		filesDir = fs.Dir()
		log.Info("blob storage: filesystem", zap.String("dir", cfg.FilesDir))
	}

	// Notification mail
	var m mailer.Mailer
	if cfg.SMTPHost != "" {
		m, err = mailer.NewSMTP(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.MailFrom,
			To:       cfg.MailTo,
		})
		if err != nil {
			log.Fatal("failed to init mailer", zap.Error(err))
		}
	} else {
		m = &mailer.LogOnly{Log: log}
		log.Warn("no SMTP host configured, notifications are log-only")
	}

	// Repositories
	userRepo := repository.NewUserRepo(gdb)
	subRepo := repository.NewSubmissionRepo(gdb)
	noteRepo := repository.NewNotificationRepo(gdb)

	// Notification dispatcher
	dispatcher := notify.NewDispatcher(notify.Config{Store: noteRepo, Mailer: m, Log: log})
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	subSvc := service.NewSubmissionService(subRepo, dispatcher, log)
	upSvc := service.NewUploadService(store)

	if err := authSvc.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPass); err != nil {
		log.Warn("failed to seed admin", zap.Error(err))
	}

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	formH := handler.NewFormHandler(subSvc, log)
	subH := handler.NewSubmissionHandler(subSvc, middleware.Origins(cfg.AllowedOrigins), log)
	upH := handler.NewUploadHandler(upSvc, log)
	pages := handler.NewPageHandler()

	// Router
	r := router.New(cfg.JWTSecret, middleware.Origins(cfg.AllowedOrigins), log,
		authH, formH, subH, upH, pages, filesDir)

	log.Info("onboarding server starting", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

// buildLogger wires the production JSON logger to stdout, teeing into a
// GELF UDP sink when one is configured.
func buildLogger(gelfAddr string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(os.Stdout),
		zap.InfoLevel,
	)

	if gelfAddr != "" {
		gw, err := gelf.New(gelfAddr)
		if err == nil {
			core = zapcore.NewTee(core, zapcore.NewCore(
				zapcore.NewJSONEncoder(encCfg), gw, zap.InfoLevel,
			))
		}
	}

	return zap.New(core)
}
