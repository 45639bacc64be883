package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cat-care-diary/internal/adapters/auth/cognito"
	"cat-care-diary/internal/adapters/media/s3store"
	pg "cat-care-diary/internal/adapters/storage/postgres"
	"cat-care-diary/internal/config"
	"cat-care-diary/internal/domain/accounts"
	"cat-care-diary/internal/domain/media"
	"cat-care-diary/internal/domain/questions"
	"cat-care-diary/internal/metrics"
	"cat-care-diary/internal/platform/httpclient"
	"cat-care-diary/internal/platform/logger"
	"cat-care-diary/internal/ports/auth"
	"cat-care-diary/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config load failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	ctx := context.Background()

	var db *sql.DB
	if cfg.Database.DSN != "" {
		db, err = pg.Open(cfg.Database.DSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		log.Info("postgres connected", nil)
	} else {
		log.Info("no DB_DSN, using in-memory repos", nil)
	}

	// Verifier de Cognito; sin issuer queda modo dev (X-Debug-User-ID).
	var verifier auth.AuthVerifier
	if cfg.Auth.CognitoIssuer != "" {
		verifier = cognito.NewVerifier(
			cfg.Auth.CognitoIssuer,
			cfg.Auth.CognitoClientID,
			httpclient.New(10*time.Second),
			log,
		)
		log.Info("cognito verifier enabled", map[string]any{"issuer": cfg.Auth.CognitoIssuer})
	} else {
		log.Warn("no COGNITO_ISSUER, running in dev auth mode", nil)
	}

	var identityAdmin accounts.IdentityAdmin
	if cfg.Auth.CognitoClientID != "" {
		admin, err := cognito.NewAdmin(ctx, cognito.AdminConfig{
			ClientID:     cfg.Auth.CognitoClientID,
			ClientSecret: cfg.Auth.CognitoClientSecret,
			Region:       cfg.Auth.AWSRegion,
		})
		if err != nil {
			log.Error("cognito admin init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		identityAdmin = admin
	}

	// Banco de preguntas: remoto si hay URL, si no el embebido.
	var source questions.Source = questions.NewStaticSource()
	if cfg.Questions.BankURL != "" {
		source = questions.NewHTTPSource(httpclient.New(10*time.Second), cfg.Questions.BankURL)
		log.Info("remote question bank configured", map[string]any{"url": cfg.Questions.BankURL})
	}
	bank := questions.NewBank(source, log)
	// precarga best-effort; si falla se reintenta en el primer request
	if err := bank.Load(ctx); err != nil {
		log.Warn("question bank preload failed", map[string]any{"err": err.Error()})
	}

	var photos media.Store
	if cfg.Media.S3Bucket != "" {
		store, err := s3store.New(ctx, cfg.Media.S3Bucket)
		if err != nil {
			log.Error("s3 store init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		photos = store
		log.Info("s3 photo store enabled", map[string]any{"bucket": cfg.Media.S3Bucket})
	}

	m := metrics.New()

	handler := router.New(router.Options{
		Log:           log,
		AuthVerifier:  verifier,
		DB:            db,
		Bank:          bank,
		PhotoStore:    photos,
		IdentityAdmin: identityAdmin,
		Metrics:       m,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", map[string]any{"err": err.Error()})
	}
}
