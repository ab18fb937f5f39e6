package main

import (
	"context"
	"log"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jotter/internal/config"
	"jotter/internal/database"
	handlers "jotter/internal/http/handler"
	"jotter/internal/http/middleware"
	tracing "jotter/internal/otel"
	"jotter/internal/repository"
	"jotter/internal/repository/mongodb"
	"jotter/internal/service"
	"jotter/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Connect to the metadata store. An unreachable store is logged inside
	// and does not stop the HTTP layer; only a malformed URI is fatal.
	db, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("invalid mongo configuration: %v", err)
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Printf("index provisioning failed: %v", err)
	}

	var blobs storage.BlobStore
	switch cfg.Upload.Driver {
	case "minio":
		blobs, err = storage.NewMinIO(cfg.MinIO)
	default:
		blobs, err = storage.NewFilesystem(cfg.Upload.Dir)
	}
	if err != nil {
		log.Fatalf("failed to initialize blob storage: %v", err)
	}

	// Repositories and services
	noteRepo := mongodb.NewNoteMongo(db)
	pdfRepo := mongodb.NewFileMongo(db, repository.PdfsCollection)
	imageRepo := mongodb.NewFileMongo(db, repository.ImagesCollection)
	statsRepo := mongodb.NewStatsMongo(db)

	noteSvc := service.NewNoteService(noteRepo)
	pdfSvc := service.NewFileService(blobs, pdfRepo, cfg.Upload.PublicPath)
	imageSvc := service.NewFileService(blobs, imageRepo, cfg.Upload.PublicPath)
	statsSvc := service.NewStatsService(noteRepo, pdfRepo, imageRepo, statsRepo, blobs)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Global middleware
	app.Use(cors.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(prom.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Blobs are served from the content directory directly; with the MinIO
	// driver they are streamed from the bucket under the same path.
	if cfg.Upload.Driver == "minio" {
		app.Get(cfg.Upload.PublicPath+"/:name", handlers.ServeBlob(blobs))
	} else {
		app.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)
	}

	handlers.RegisterRoutes(app, db, noteSvc, pdfSvc, imageSvc, statsSvc)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
