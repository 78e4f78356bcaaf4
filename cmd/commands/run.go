package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	uwr "github.com/UnitedWeRise-org/UnitedWeRise-sub002"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/config"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/application/usecase"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/infrastructure/broker"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/infrastructure/database"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/infrastructure/identity"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/infrastructure/minio"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/infrastructure/moderation"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/presentation/handler"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/presentation/middleware"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/pkg/logger"
)

func HandleRun(args []string) {
	if len(args) < 3 {
		ExitOnError(errors.New("at least 1 arguments expected\nuse help command for more information"))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	logger.Info("running photo service", "version", uwr.StringVersion())

	brokerClient, err := broker.NewClient(cfg.BrokerConfig)
	if err != nil {
		ExitOnError(err)
	}

	brokerPublisher := broker.NewPublisher(brokerClient, cfg.PublisherConfig)

	db, err := database.Connect(cfg.DBConfig)
	if err != nil {
		ExitOnError(err)
	}

	dbWriter := database.NewPhotoWriter(db, cfg.Pipeline.Limits.UserQuotaBytes)
	dbRetriever := database.NewPhotoRetriever(db)
	dbRemover := database.NewPhotoRemover(db)
	dbLister := database.NewPhotoLister(db)

	minIOClient, err := minio.New(&cfg.MinIOClient)
	if err != nil {
		ExitOnError(err)
	}
	if err := minIOClient.EnsureBucket(context.Background(), cfg.MinIOUploader.Bucket); err != nil {
		ExitOnError(err)
	}

	minIOUploader := minio.NewUploader(minIOClient.MinioClient, &cfg.MinIOUploader)
	minIORemover := minio.NewRemover(minIOClient.MinioClient, cfg.MinIOUploader.Bucket, &cfg.MinIORemover)
	minIOReader := minio.NewReader(minIOClient.MinioClient, &cfg.MinIOReader)
	minIOPresigner := minio.NewPresigner(minIOClient.MinioClient, cfg.MinIOUploader.Bucket)
	minIOLister := minio.NewLister(minIOClient.MinioClient, cfg.MinIOUploader.Bucket)

	classifier := moderation.NewClient(cfg.Moderation)
	verifier := identity.NewClient(cfg.Identity)

	uploader := usecase.NewUploader(dbRetriever, dbWriter, minIOUploader, minIORemover,
		classifier, verifier, brokerPublisher, &cfg.Pipeline)
	presigner := usecase.NewPresigner(minIOPresigner, minIOReader, minIORemover, uploader, cfg.Presign)
	attacher := usecase.NewAttacher(dbRetriever, dbWriter)
	deleter := usecase.NewDeleter(dbRemover)
	getter := usecase.NewGetter(dbRetriever)
	ownLister := usecase.NewLister(dbLister)

	folders := make([]string, 0, len(cfg.Pipeline.Presets))
	for _, preset := range cfg.Pipeline.Presets {
		folders = append(folders, preset.Folder)
	}
	folders = append(folders, cfg.Pipeline.ThumbFolder)

	reconciler := usecase.NewReconciler(dbLister, minIOLister, minIORemover, brokerPublisher,
		folders, cfg.Presign.StagingFolder, cfg.Reconciler)

	uploadHandler := handler.NewUploadHandler(uploader)
	presignHandler := handler.NewPresignHandler(presigner)
	attachHandler := handler.NewAttachHandler(attacher)
	deleteHandler := handler.NewDeleteHandler(deleter)
	getHandler := handler.NewGetHandler(getter)
	listHandler := handler.NewListHandler(ownLister)

	e := echo.New()
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderContentLength},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost,
			http.MethodDelete, http.MethodHead, http.MethodOptions},
		MaxAge: 86400,
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.BodyLimit(cfg.Server.BodyLimit))
	e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(
		rate.Limit(cfg.Server.RateLimit))))

	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	auth := middleware.Auth([]byte(cfg.JWTSecret))

	e.POST("/photos", uploadHandler.HandleUpload, auth)
	e.POST("/photos/presign", presignHandler.HandlePresign, auth)
	e.POST("/photos/confirm", presignHandler.HandleConfirm, auth)
	e.POST("/posts/:postID/photos/:photoID", attachHandler.HandleAttach, auth)
	e.DELETE("/photos/:photoID", deleteHandler.HandleDelete, auth)
	e.GET("/photos", listHandler.HandleList, auth)
	e.GET("/photos/:photoID", getHandler.HandleGet)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runReconciler(ctx, reconciler, cfg.Reconciler)

	go func() {
		if err := e.Start(cfg.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ExitOnError(fmt.Errorf("shutting down server: %w", err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		ExitOnError(err)
	}

	if err := db.Stop(); err != nil {
		logger.Error("failed to close database connection", "err", err)
	}
	if err := brokerClient.Close(); err != nil {
		logger.Error("failed to close broker connection", "err", err)
	}
}

func runReconciler(ctx context.Context, reconciler *usecase.Reconciler, cfg usecase.ReconcilerConfig) {
	if cfg.IntervalSeconds <= 0 {
		return
	}

	ticker := time.NewTicker(time.Duration(cfg.IntervalSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := reconciler.Sweep(ctx); err != nil {
				logger.Error("reconciliation sweep failed", "err", err)
			}
		}
	}
}
