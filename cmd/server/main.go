package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/fadilmartias/resume-screener/internal/config"
	"github.com/fadilmartias/resume-screener/internal/domain/fiber/handler"
	appLogger "github.com/fadilmartias/resume-screener/internal/logger"
	"github.com/fadilmartias/resume-screener/internal/middleware"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/repository"
	"github.com/fadilmartias/resume-screener/internal/service"
	"github.com/fadilmartias/resume-screener/internal/usecase"
	"github.com/fadilmartias/resume-screener/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	storageConfig := config.LoadStorageConfig()
	llmConfig := config.LoadLLMConfig()
	dbConfig := config.LoadDBConfig()

	if err := errors.Join(storageConfig.Validate(), llmConfig.Validate(), dbConfig.Validate()); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl, err := appLogger.New(appConfig.LogJSON, appConfig.Debug)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB(zl)

	projectRepo := repository.NewProjectRepository(db)
	fileRepo := repository.NewUploadedFileRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)

	storage, err := service.NewS3StorageService(ctx, storageConfig, zl)
	if err != nil {
		log.Fatal(err)
	}

	readPDF := service.PDFTextFunc(util.ExtractPDFText)
	if config.LoadExtractConfig().OCRFallback {
		readPDF = util.ExtractPDFTextWithOCR(zl)
	}
	extractor := service.NewExtractionService(storage, appConfig.TmpDir, readPDF, zl)

	completer, err := newChatCompleter(ctx, llmConfig)
	if err != nil {
		log.Fatal(err)
	}
	llm := service.NewLLMService(completer, llmConfig.MaxRetries, zl)

	assessmentUC := usecase.NewAssessmentUsecase(extractor, llm, projectRepo, fileRepo, assessmentRepo, zl)
	fileUC := usecase.NewFileUsecase(storage, projectRepo, fileRepo, zl)
	projectUC := usecase.NewProjectUsecase(projectRepo)

	handler.NewAssessmentHandler(assessmentUC).RegisterRoutes(app)
	handler.NewUploadHandler(fileUC).RegisterRoutes(app)
	handler.NewFileHandler(fileUC).RegisterRoutes(app)
	handler.NewProjectHandler(projectUC, assessmentUC, fileUC).RegisterRoutes(app)

	if appConfig.Debug {
		go func() {
			ticker := time.NewTicker(1 * time.Minute)
			defer ticker.Stop()

			for range ticker.C {
				zl.Debug("runtime stats", zap.Int("goroutines", runtime.NumGoroutine()))
			}
		}()
	}

	zl.Info("server running", zap.String("port", appConfig.Port), zap.String("llm_provider", llmConfig.Provider))
	if err := app.Listen(appConfig.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func newChatCompleter(ctx context.Context, cfg *config.LLMConfig) (service.ChatCompleter, error) {
	if cfg.Provider == config.ProviderGemini {
		gemini, err := service.NewGeminiChatService(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return gemini, nil
	}
	return service.NewOpenAIChatService(cfg), nil
}

func ConnectDB(zl *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
		dbConfig.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zl.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zl.Fatal("could not get database instance", zap.Error(err))
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.Project{}, &model.UploadedFile{}, &model.AssessmentResult{}); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
	return db
}
