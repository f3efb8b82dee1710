package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkpost/inkpost/internal/posts"
)

const maxUploadBytes = 32 << 20

type PostsHandler struct {
	repo   *posts.Repository
	logger *slog.Logger
}

func NewPostsHandler(repo *posts.Repository, logger *slog.Logger) *PostsHandler {
	return &PostsHandler{
		repo:   repo,
		logger: logger,
	}
}

// Create accepts the author form as multipart data: title, content,
// excerpt, published ("true" publishes, anything else stays draft) and the
// banner file. Required fields are rejected here, before any storage I/O.
func (h *PostsHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid multipart form", nil)
			return
		}

		title := r.FormValue("title")
		content := r.FormValue("content")
		excerpt := r.FormValue("excerpt")
		published := r.FormValue("published") == "true"

		errs := make(map[string]string)
		if title == "" {
			errs["title"] = "required"
		}
		if content == "" {
			errs["content"] = "required"
		}
		if excerpt == "" {
			errs["excerpt"] = "required"
		}
		banner, header, err := r.FormFile("banner")
		if err != nil {
			errs["banner"] = "required"
		} else {
			defer banner.Close()
		}
		if len(errs) > 0 {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", errs)
			return
		}

		post, err := h.repo.Create(r.Context(), posts.NewPost{
			Title:     title,
			Content:   content,
			Excerpt:   excerpt,
			Published: published,
			Banner: posts.BannerFile{
				FileName:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Body:        banner,
			},
		})
		if err != nil {
			h.logger.Error("create post failed", "title", title, "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
			return
		}

		writeJSON(w, http.StatusCreated, post)
	}
}

func (h *PostsHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		published, err := h.repo.ListPublished(r.Context())
		if err != nil {
			h.logger.Error("list posts failed", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
			return
		}
		writeJSON(w, http.StatusOK, published)
	}
}

func (h *PostsHandler) GetBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		if slug == "" {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "slug is required", nil)
			return
		}

		post, err := h.repo.GetBySlug(r.Context(), slug)
		if err != nil {
			if errors.Is(err, posts.ErrNotFound) {
				writeError(w, http.StatusNotFound, "NOT_FOUND", "post not found", nil)
				return
			}
			h.logger.Error("get post failed", "slug", slug, "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

func (h *PostsHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "id is required", nil)
			return
		}

		if err := h.repo.Delete(r.Context(), id); err != nil {
			if errors.Is(err, posts.ErrNotFound) {
				writeError(w, http.StatusNotFound, "NOT_FOUND", "post not found", nil)
				return
			}
			h.logger.Error("delete post failed", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
