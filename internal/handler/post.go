package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/periferia/periferia-social/internal/middleware"
	"github.com/periferia/periferia-social/internal/model"
	"github.com/periferia/periferia-social/internal/service"
)

// PostHandler handles HTTP requests for the feed, post creation and likes.
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{service: svc}
}

// HandleFeed handles GET /api/posts requests.
func (h *PostHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.CurrentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entries, err := h.service.GetFeed(r.Context(), current.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeData(w, http.StatusOK, entries)
}

// HandleCreatePost handles POST /api/posts requests.
func (h *PostHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.CurrentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.CreatePost(r.Context(), current, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageRequired), errors.Is(err, service.ErrMessageTooLong):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeData(w, http.StatusCreated, entry)
}

// HandleLikePost handles POST /api/posts/{id}/like requests.
func (h *PostHandler) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	h.handleLikeChange(w, r, h.service.LikePost)
}

// HandleUnlikePost handles POST /api/posts/{id}/unlike requests.
func (h *PostHandler) HandleUnlikePost(w http.ResponseWriter, r *http.Request) {
	h.handleLikeChange(w, r, h.service.UnlikePost)
}

func (h *PostHandler) handleLikeChange(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, postID, viewerID string) (model.PostResponse, error),
) {
	current, ok := middleware.CurrentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	postID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(postID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	entry, err := op(r.Context(), postID, current.ID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "Publicación no encontrada")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeData(w, http.StatusOK, entry)
}
