package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-site/pkg/simplesite"
)

const maxUploadSize = 10 << 20 // 10 MB

// ImageResponse is the response body for an uploaded image
type ImageResponse struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	FileName string `json:"file_name,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	Size     int64  `json:"size"`
}

// ImageHandler handles HTTP requests for image uploads
type ImageHandler struct {
	service simplesite.Service
}

// NewImageHandler creates a new image handler
func NewImageHandler(service simplesite.Service) *ImageHandler {
	return &ImageHandler{service: service}
}

// Routes returns the admin image routes
func (h *ImageHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.UploadImage)
	// Object keys contain slashes, so the delete route takes a wildcard.
	r.Delete("/*", h.DeleteImage)

	return r
}

// UploadImage accepts a multipart form upload under the "file" field and
// stores it in the configured blob backend
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeBadRequest(w, r, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, r, "missing file field")
		return
	}
	defer file.Close()

	image, err := h.service.UploadImage(r.Context(), file, simplesite.UploadImageRequest{
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
	})
	if err != nil {
		slog.Error("Failed to upload image", "file_name", header.Filename, "error", err)
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, ImageResponse{
		Key:      image.Key,
		URL:      image.URL,
		FileName: image.FileName,
		MimeType: image.MimeType,
		Size:     image.Size,
	})
}

// DeleteImage removes an image from the blob backend
func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		writeBadRequest(w, r, "missing image key")
		return
	}

	if err := h.service.DeleteImage(r.Context(), key); err != nil {
		slog.Error("Failed to delete image", "key", key, "error", err)
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
