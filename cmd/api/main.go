// Command api runs the studio backend HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"studio-backend/internal/config"
	"studio-backend/internal/interfaces/rest"
	"studio-backend/internal/repository/ddb"
	"studio-backend/internal/service/catalog"
	"studio-backend/internal/service/community"
	"studio-backend/internal/service/media"
	"studio-backend/internal/storage"
	"studio-backend/internal/vimeo"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		logger.Fatal("failed to load AWS config", zap.Error(err))
	}

	repo := ddb.NewRepository(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBTable, cfg.IndexName, logger)
	planner := ddb.NewPlanner(cfg.DynamoDBTable, repo)
	images := storage.NewImageStore(s3.NewFromConfig(awsCfg), cfg.ImageBucket, cfg.ImageBaseURL, logger)
	platform := vimeo.NewClient(vimeo.Config{
		BaseURL:      cfg.VimeoBaseURL,
		Token:        cfg.VimeoToken,
		Preset:       cfg.VimeoPreset,
		EmbedDomains: cfg.VimeoEmbedDomains,
	}, logger)

	catalogService := catalog.NewService(repo, planner, logger)
	communityService := community.NewService(repo, logger)
	mediaService := media.NewService(repo, platform, images, logger)

	router := rest.NewRouter(
		rest.NewCatalogHandler(catalogService, logger),
		rest.NewCommunityHandler(communityService, logger),
		rest.NewMediaHandler(mediaService, logger),
		rest.RouterConfig{EnableCORS: cfg.EnableCORS},
		logger,
	)

	server := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("address", cfg.ServerAddress),
			zap.String("table", cfg.DynamoDBTable),
			zap.String("environment", cfg.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	if cfg.IsDevelopment() {
		zcfg := zap.NewDevelopmentConfig()
		zcfg.Level = zap.NewAtomicLevelAt(level)
		return zcfg.Build()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
