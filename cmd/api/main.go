package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"fairrank/resume-screener/internal/config"
	"fairrank/resume-screener/internal/handlers"
	"fairrank/resume-screener/internal/logger"
	"fairrank/resume-screener/internal/repositories"
	"fairrank/resume-screener/internal/services"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Logging.Level, cfg.Server.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	jdRepo := repositories.NewJobDescriptionRepository(db)
	subRepo := repositories.NewSubmissionRepository(db)

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("failed to create upload directory", zap.Error(err))
	}

	extractor := services.NewTextExtractorService()

	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbedModel,
		zlog,
	)
	if err != nil {
		zlog.Fatal("failed to initialize Gemini client", zap.Error(err))
	}

	vectorIndex, err := services.NewQdrantIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		zlog,
	)
	if err != nil {
		zlog.Fatal("failed to initialize Qdrant", zap.Error(err))
	}

	if err := vectorIndex.EnsureCollection(context.Background()); err != nil {
		zlog.Fatal("failed to ensure Qdrant collection", zap.Error(err))
	}

	jdStore := services.NewJDStoreService(jdRepo, vectorIndex, geminiService, zlog)
	scorer := services.NewScorerService(geminiService, zlog)
	screening := services.NewScreeningService(jdStore, scorer, geminiService, zlog)

	mailer := services.NewSMTPMailer(cfg.SMTP)
	notifier := services.NewNotificationService(mailer, cfg.SMTP.HREmail, zlog)
	recruitment := services.NewRecruitmentService(cfg.Recruitment, zlog)

	submissionService := services.NewSubmissionService(subRepo, screening, notifier, recruitment, zlog)

	worker := services.NewWorker(
		subRepo,
		submissionService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
		zlog,
	)
	worker.Start(context.Background())

	jdHandler := handlers.NewJDHandler(jdStore, storageService, extractor)
	screenHandler := handlers.NewScreenHandler(screening, storageService, extractor)
	submissionHandler := handlers.NewSubmissionHandler(subRepo, worker, storageService, extractor)

	app := fiber.New(fiber.Config{
		AppName:      "FairRank Screening API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/jds", jdHandler.HandleUpload)
	api.Get("/jds", jdHandler.HandleList)
	api.Get("/jds/:id", jdHandler.HandleGet)
	api.Delete("/jds/:id", jdHandler.HandleDelete)

	api.Post("/screen", screenHandler.HandleScreen)

	api.Post("/submissions", submissionHandler.HandleSubmit)
	api.Get("/submissions/:id", submissionHandler.HandleGetResult)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "FairRank Screening API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/jds",
				"GET /api/v1/jds",
				"GET /api/v1/jds/:id",
				"DELETE /api/v1/jds/:id",
				"POST /api/v1/screen",
				"POST /api/v1/submissions",
				"GET /api/v1/submissions/:id",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
