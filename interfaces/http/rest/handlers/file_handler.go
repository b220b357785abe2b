package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/pkg/api"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MaxUploadBytes bounds a single uploaded file
const MaxUploadBytes = 16 << 20

// FileHandler serves the file service endpoints
type FileHandler struct {
	images       ports.ImageRepository
	publicURL    string
	errorHandler *errors.ErrorHandler
	logger       *zap.Logger
}

// NewFileHandler creates a file handler. publicURL is the base used in
// upload responses; when empty it is derived from the request host.
func NewFileHandler(images ports.ImageRepository, publicURL string, errorHandler *errors.ErrorHandler, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		images:       images,
		publicURL:    strings.TrimRight(publicURL, "/"),
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// Upload handles POST /res with multipart field "file"
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.Handle(w, r, errors.NewValidationError("file is required").WithCause(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.Handle(w, r, errors.NewValidationError("failed to read file").WithCause(err))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	id, err := h.images.Save(r.Context(), contentType, data)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("File stored",
		zap.String("id", id),
		zap.String("filename", header.Filename),
		zap.String("contentType", contentType),
		zap.Int("bytes", len(data)),
	)
	respondJSON(w, h.logger, http.StatusOK, api.Upload{ID: id, URL: h.baseURL(r) + "/res/" + url.PathEscape(id)})
}

// Get handles GET /res/{id}
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	image, err := h.images.Get(r.Context(), id)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	w.Header().Set("Content-Type", image.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(image.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(image.Data); err != nil {
		h.logger.Warn("Failed to write file", zap.String("id", id), zap.Error(err))
	}
}

func (h *FileHandler) baseURL(r *http.Request) string {
	if h.publicURL != "" {
		return h.publicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
