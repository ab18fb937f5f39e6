package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"jotter/internal/model"
	"jotter/internal/service"
	serviceMocks "jotter/internal/service/mocks"
	storageMocks "jotter/internal/storage/mocks"
)

func TestLiveness(t *testing.T) {
	app := fiber.New()
	app.Get("/", Liveness())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Server is running successfully!", string(body))
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("healthy", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		app := fiber.New()
		app.Get("/health", HealthCheck(mt.DB))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(mt, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(mt, "healthy", body["status"])
	})

	mt.Run("unhealthy", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    6,
			Message: "host unreachable",
			Name:    "HostUnreachable",
		}))

		app := fiber.New()
		app.Get("/health", HealthCheck(mt.DB))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(mt, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestCreateNote(t *testing.T) {
	mockSvc := new(serviceMocks.MockNoteService)
	app := fiber.New()
	app.Post("/notes", CreateNote(mockSvc))

	t.Run("created", func(t *testing.T) {
		expected := &model.Note{
			ID:          primitive.NewObjectID(),
			Header:      "A",
			Description: "B",
			CreatedAt:   time.Now().UTC(),
			Favourite:   false,
			Type:        "general",
		}
		mockSvc.On("Create", mock.Anything, service.CreateNoteInput{Header: "A", Description: "B"}).
			Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/notes",
			bytes.NewBufferString(`{"header":"A","description":"B"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Note
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "A", result.Header)
		assert.Equal(t, "B", result.Description)
		assert.False(t, result.Favourite)
		assert.Equal(t, "general", result.Type)
		assert.False(t, result.ID.IsZero())
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation failure is a client error", func(t *testing.T) {
		verr := &model.ValidationError{Field: "header", Reason: "is required"}
		mockSvc.On("Create", mock.Anything, service.CreateNoteInput{Description: "B"}).
			Return(nil, verr).Once()

		req := httptest.NewRequest(http.MethodPost, "/notes",
			bytes.NewBufferString(`{"description":"B"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Contains(t, body.Error, "header")
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/notes",
			bytes.NewBufferString(`{"header":`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("store failure is a server error", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, errors.New("store down")).Once()

		req := httptest.NewRequest(http.MethodPost, "/notes",
			bytes.NewBufferString(`{"header":"A","description":"B"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "store down", body.Error)
		mockSvc.AssertExpectations(t)
	})
}

func TestListNotes(t *testing.T) {
	mockSvc := new(serviceMocks.MockNoteService)
	app := fiber.New()
	app.Get("/notes", ListNotes(mockSvc))

	t.Run("all notes", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "").
			Return([]model.Note{{Header: "A"}, {Header: "B"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/notes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.Note
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 2)
		mockSvc.AssertExpectations(t)
	})

	t.Run("date query is forwarded", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "2024-01-01").
			Return([]model.Note{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/notes?date=2024-01-01", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "[]", string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "").
			Return(nil, errors.New("store down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/notes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	part.Write([]byte(content))
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := fiber.New()
	app.Post("/upload-pdf", UploadFile(mockSvc))

	t.Run("created", func(t *testing.T) {
		expected := &model.FileRecord{
			ID:         primitive.NewObjectID(),
			Name:       "doc.pdf",
			URL:        "http://example.com/uploads/1700000000000-doc.pdf",
			UploadedAt: time.Now().UTC(),
		}
		mockSvc.On("Upload", mock.Anything, mock.Anything, "doc.pdf", int64(8), "http://example.com").
			Return(expected, nil).Once()

		body, contentType := multipartBody(t, "file", "doc.pdf", "pdfbytes")
		req := httptest.NewRequest(http.MethodPost, "/upload-pdf", body)
		req.Header.Set("Content-Type", contentType)
		req.Host = "example.com"
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.FileRecord
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "doc.pdf", result.Name)
		assert.Contains(t, result.URL, "doc.pdf")
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing file part", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/upload-pdf", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "file is required", body.Error)
	})

	t.Run("wrong field name", func(t *testing.T) {
		body, contentType := multipartBody(t, "attachment", "doc.pdf", "pdfbytes")
		req := httptest.NewRequest(http.MethodPost, "/upload-pdf", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, mock.Anything, "doc.pdf", mock.Anything, mock.Anything).
			Return(nil, errors.New("disk full")).Once()

		body, contentType := multipartBody(t, "file", "doc.pdf", "pdfbytes")
		req := httptest.NewRequest(http.MethodPost, "/upload-pdf", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListFiles(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := fiber.New()
	app.Get("/pdfs", ListFiles(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("List", mock.Anything).
			Return([]model.FileRecord{{Name: "doc.pdf"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/pdfs", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.FileRecord
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything).
			Return(nil, errors.New("store down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/pdfs", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestStatsHandlers(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		register func(app *fiber.App, svc *serviceMocks.MockStatsService)
		method   string
		expect   func(svc *serviceMocks.MockStatsService)
		wantBody map[string]any
	}{
		{
			name: "note stats",
			path: "/notes-stats",
			register: func(app *fiber.App, svc *serviceMocks.MockStatsService) {
				app.Get("/notes-stats", NoteStats(svc))
			},
			expect: func(svc *serviceMocks.MockStatsService) {
				svc.On("NoteStats", mock.Anything).
					Return(&service.ResourceStats{Count: 7, TotalSize: "2.00 MB"}, nil).Once()
			},
			wantBody: map[string]any{"count": float64(7), "totalSize": "2.00 MB"},
		},
		{
			name: "image stats",
			path: "/images-stats",
			register: func(app *fiber.App, svc *serviceMocks.MockStatsService) {
				app.Get("/images-stats", ImageStats(svc))
			},
			expect: func(svc *serviceMocks.MockStatsService) {
				svc.On("ImageStats", mock.Anything).
					Return(&service.ResourceStats{Count: 3, TotalSize: "1.00 MB"}, nil).Once()
			},
			wantBody: map[string]any{"count": float64(3), "totalSize": "1.00 MB"},
		},
		{
			name: "pdf stats",
			path: "/pdf-stats",
			register: func(app *fiber.App, svc *serviceMocks.MockStatsService) {
				app.Get("/pdf-stats", PdfStats(svc))
			},
			expect: func(svc *serviceMocks.MockStatsService) {
				svc.On("PdfStats", mock.Anything).
					Return(&service.ResourceStats{Count: 2, TotalSize: "10.00 MB"}, nil).Once()
			},
			wantBody: map[string]any{"count": float64(2), "totalSize": "10.00 MB"},
		},
		{
			name: "database size has no count",
			path: "/database-size",
			register: func(app *fiber.App, svc *serviceMocks.MockStatsService) {
				app.Get("/database-size", DatabaseSize(svc))
			},
			expect: func(svc *serviceMocks.MockStatsService) {
				svc.On("DatabaseStats", mock.Anything).
					Return(&service.DatabaseStats{TotalSize: "2.00 MB"}, nil).Once()
			},
			wantBody: map[string]any{"totalSize": "2.00 MB"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockStatsService)
			app := fiber.New()
			tt.register(app, mockSvc)
			tt.expect(mockSvc)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body map[string]any
			json.NewDecoder(resp.Body).Decode(&body)
			assert.Equal(t, tt.wantBody, body)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestStatsHandlerError(t *testing.T) {
	mockSvc := new(serviceMocks.MockStatsService)
	app := fiber.New()
	app.Get("/notes-stats", NoteStats(mockSvc))

	mockSvc.On("NoteStats", mock.Anything).
		Return(nil, errors.New("store down")).Once()

	req := httptest.NewRequest(http.MethodGet, "/notes-stats", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body errorPayload
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "store down", body.Error)
	mockSvc.AssertExpectations(t)
}

func TestServeBlob(t *testing.T) {
	mockStore := new(storageMocks.MockBlobStore)
	app := fiber.New()
	app.Get("/uploads/:name", ServeBlob(mockStore))

	t.Run("streams the blob", func(t *testing.T) {
		mockStore.On("Open", mock.Anything, "1700000000000-doc.pdf").
			Return(io.NopCloser(bytes.NewReader([]byte("pdfbytes"))), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/uploads/1700000000000-doc.pdf", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "application/pdf")
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "pdfbytes", string(body))
		mockStore.AssertExpectations(t)
	})

	t.Run("missing blob", func(t *testing.T) {
		mockStore.On("Open", mock.Anything, "0-gone.pdf").
			Return(nil, errors.New("no such object")).Once()

		req := httptest.NewRequest(http.MethodGet, "/uploads/0-gone.pdf", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockStore.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	notes := new(serviceMocks.MockNoteService)
	pdfs := new(serviceMocks.MockFileService)
	images := new(serviceMocks.MockFileService)
	stats := new(serviceMocks.MockStatsService)
	RegisterRoutes(app, nil, notes, pdfs, images, stats)

	t.Run("unknown route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.NotEmpty(t, body.Error)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/notes", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}
