package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/what2play/api/internal/core/domain"
	"github.com/what2play/api/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

func (h *VoteHandler) ToggleVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	voted, err := h.service.Toggle(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "gameID"))
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "Game not found in this poll")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to toggle vote")
		return
	}

	message := "Vote removed"
	if voted {
		message = "Vote added"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"voted":   voted,
	})
}
