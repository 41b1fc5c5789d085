package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	userrepo "storefront/internal/repository/user"
	authsvc "storefront/internal/service/auth"
	catalogsvc "storefront/internal/service/catalog"
	ordersvc "storefront/internal/service/order"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("load config")
	}
	logger := config.NewLogger(cfg)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to db")
	}
	defer dbpool.Close()

	users := userrepo.NewPostgres(dbpool, logger)
	products := productrepo.NewPostgres(dbpool, logger)
	orders := orderrepo.NewPostgres(dbpool, logger)

	var images storage.ImageStore
	staticDir := ""
	if cfg.S3.Enabled {
		images, err = storage.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("init s3 image store")
		}
	} else {
		images, err = storage.NewDiskStore(cfg.UploadDir, cfg.FileURLHost, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("init disk image store")
		}
		staticDir = cfg.UploadDir
	}

	tokens := authsvc.NewTokenManager(cfg.TokenSigningKey, cfg.TokenTTL)
	authService := authsvc.New(users, orders, tokens, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword, logger)
	catalogService := catalogsvc.New(products, images, logger)
	orderService := ordersvc.New(orders, users, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AuthSvc:        authService,
		CatalogSvc:     catalogService,
		OrderSvc:       orderService,
		Tokens:         tokens,
		StaticImageDir: staticDir,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}
}
