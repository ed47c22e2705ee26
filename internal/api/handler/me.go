package handler

import (
	"errors"
	"net/http"

	"github.com/routelogpro/routelogpro/internal/api/response"
	"github.com/routelogpro/routelogpro/internal/auth"
)

// MeHandler handles user account endpoints.
type MeHandler struct {
	authService *auth.Service
}

// NewMeHandler creates a new MeHandler.
func NewMeHandler(authService *auth.Service) *MeHandler {
	return &MeHandler{
		authService: authService,
	}
}

// GetMe handles GET /v1/me - get current user account summary.
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.NotFound(w, r, "user not found")
			return
		}
		response.InternalError(w, r, "failed to load user")
		return
	}

	response.JSON(w, r, http.StatusOK, user)
}
