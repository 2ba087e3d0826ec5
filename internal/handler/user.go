package handler

import (
	"errors"
	"net/http"

	"github.com/periferia/periferia-social/internal/middleware"
	"github.com/periferia/periferia-social/internal/repository"
	"github.com/periferia/periferia-social/internal/service"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.AuthService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleMe handles GET /api/users/me requests. The profile is re-read from
// the database, so a token whose user row has vanished yields a 404.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.CurrentUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := h.service.GetUser(r.Context(), current.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "Usuario no encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeData(w, http.StatusOK, profile)
}
