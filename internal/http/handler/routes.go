package handler

import (
	"context"
	"errors"
	"mime"
	"net/url"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"jotter/internal/model"
	"jotter/internal/service"
	"jotter/internal/storage"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers bind one service call each and stay free of business logic.
func RegisterRoutes(app *fiber.App, db *mongo.Database, notes service.NoteService, pdfs, images service.FileService, stats service.StatsService) {
	app.Get("/", Liveness())
	app.Get("/healthz", LivenessProbe())
	app.Get("/health", HealthCheck(db))

	app.Post("/notes", CreateNote(notes))
	app.Get("/notes", ListNotes(notes))

	app.Post("/upload-pdf", UploadFile(pdfs))
	app.Get("/pdfs", ListFiles(pdfs))

	app.Post("/upload-image", UploadFile(images))
	app.Get("/images", ListFiles(images))

	app.Get("/notes-stats", NoteStats(stats))
	app.Get("/images-stats", ImageStats(stats))
	app.Get("/pdf-stats", PdfStats(stats))
	app.Get("/database-size", DatabaseSize(stats))

	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})
}

// Liveness answers the root route with a plain confirmation text.
func Liveness() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("Server is running successfully!")
	}
}

// LivenessProbe is a bare 200 probe with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// HealthCheck reports metadata store connectivity.
func HealthCheck(db *mongo.Database) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// CreateNote creates a note from a JSON body. Validation failures are the
// only client errors in the API: they return 400, everything else 500.
func CreateNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input service.CreateNoteInput
		if err := c.BodyParser(&input); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body")
		}

		note, err := svc.Create(c.UserContext(), input)
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				return writeError(c, fiber.StatusBadRequest, err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(note)
	}
}

// ListNotes lists notes, optionally restricted by a ?date=YYYY-MM-DD query
// parameter covering one UTC calendar day. A malformed date is a server
// error, matching the API's coarse status mapping.
func ListNotes(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := svc.List(c.UserContext(), c.Query("date"))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(notes)
	}
}

// UploadFile accepts multipart/form-data with a single part named "file"
// and hands it to the given file service. Used for both /upload-pdf and
// /upload-image; no content sniffing is performed.
func UploadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "cannot open uploaded file")
		}
		defer f.Close()

		baseURL := c.Protocol() + "://" + c.Hostname()

		rec, err := svc.Upload(c.UserContext(), f, fh.Filename, fh.Size, baseURL)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// ListFiles lists all records of one uploaded-file kind.
func ListFiles(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(recs)
	}
}

// NoteStats reports note count and aggregated content size.
func NoteStats(svc service.StatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.NoteStats(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(stats)
	}
}

// ImageStats reports image record count and content-directory scan size.
func ImageStats(svc service.StatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.ImageStats(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(stats)
	}
}

// PdfStats reports pdf record count and content-directory scan size.
func PdfStats(svc service.StatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.PdfStats(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(stats)
	}
}

// DatabaseSize reports the store engine's total data size.
func DatabaseSize(svc service.StatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.DatabaseStats(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(stats)
	}
}

// ServeBlob streams a stored blob by name. Registered instead of static
// serving when the blob backend has no local directory, so public URLs are
// identical across storage drivers.
func ServeBlob(blobs storage.BlobStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil || name == "" {
			return writeError(c, fiber.StatusBadRequest, "invalid blob name")
		}

		rc, err := blobs.Open(c.UserContext(), name)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "blob not found")
		}

		if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
			c.Set(fiber.HeaderContentType, ct)
		}
		return c.SendStream(rc)
	}
}
