package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/inkpost/inkpost/internal/assets"
)

type UploadsHandler struct {
	uploader *assets.Uploader
	logger   *slog.Logger
}

func NewUploadsHandler(uploader *assets.Uploader, logger *slog.Logger) *UploadsHandler {
	return &UploadsHandler{
		uploader: uploader,
		logger:   logger,
	}
}

// UploadImage serves the rich-text editor's inline image uploads. Only the
// declared media type is checked; the bytes themselves are not sniffed.
func (h *UploadsHandler) UploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid multipart form", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "no file provided", nil)
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "file must be an image", nil)
			return
		}

		url, err := h.uploader.Upload(r.Context(), assets.NamespaceEditorImages, header.Filename, file, contentType)
		if err != nil {
			h.logger.Error("upload editor image failed", "file", header.Filename, "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}
