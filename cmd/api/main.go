package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/inkpost/inkpost/internal/assets"
	"github.com/inkpost/inkpost/internal/clock"
	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/events"
	"github.com/inkpost/inkpost/internal/handlers"
	"github.com/inkpost/inkpost/internal/middleware"
	"github.com/inkpost/inkpost/internal/posts"
	"github.com/inkpost/inkpost/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if cfg.S3Bucket == "" {
		logger.Error("S3_BUCKET is required")
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		logger.Error("loading AWS config failed", "error", err)
		os.Exit(1)
	}
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = &cfg.S3Endpoint
			o.UsePathStyle = true
		}
	})
	store := storage.NewS3Storage(s3Client, cfg.S3Bucket, cfg.AWSRegion, cfg.S3PublicBaseURL)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		rmq, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("connecting to RabbitMQ failed", "error", err)
			os.Exit(1)
		}
		defer rmq.Close()
		publisher = rmq
	}

	uploader := assets.NewUploader(store, clock.System{})
	repo := posts.NewRepository(store, uploader, publisher, posts.UUIDGenerator{}, clock.System{}, logger)

	postsHandler := handlers.NewPostsHandler(repo, logger)
	uploadsHandler := handlers.NewUploadsHandler(uploader, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handlers.Health(&handlers.HealthDeps{Storage: store, RabbitMQURL: cfg.RabbitMQURL}))
	mux.HandleFunc("POST /posts", postsHandler.Create())
	mux.HandleFunc("GET /posts", postsHandler.List())
	mux.HandleFunc("GET /posts/{slug}", postsHandler.GetBySlug())
	mux.HandleFunc("DELETE /posts/{id}", postsHandler.Delete())
	mux.HandleFunc("POST /uploads/images", uploadsHandler.UploadImage())

	var handler http.Handler = mux
	handler = middleware.APIKey(cfg.APIKey)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
