package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/what2play/api/internal/core/domain"
	"github.com/what2play/api/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type addGameRequest struct {
	IGDBID   int64  `json:"igdb_id"`
	Title    string `json:"title"`
	CoverURL string `json:"cover_url"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	poll, err := h.service.Create(r.Context(), ports.CreatePollInput{
		CreatorID:   userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Poll created successfully",
		"poll":    poll,
	})
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPollID):
			writeError(w, http.StatusBadRequest, "Invalid poll ID format")
		case errors.Is(err, domain.ErrPollNotFound):
			writeError(w, http.StatusNotFound, "Poll not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to fetch poll")
		}
		return
	}

	writeJSON(w, http.StatusOK, details)
}

func (h *PollHandler) AddGame(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value(UserIDKey).(uuid.UUID); !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req addGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	game, err := h.service.AddGame(r.Context(), ports.AddGameInput{
		PollID:   chi.URLParam(r, "id"),
		IGDBID:   req.IGDBID,
		Title:    req.Title,
		CoverURL: req.CoverURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrPollNotFound):
			writeError(w, http.StatusNotFound, "Poll not found")
		case errors.Is(err, domain.ErrGameAlreadyAdded):
			writeError(w, http.StatusConflict, "This game has already been added to the poll")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to add game")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Game added successfully",
		"game":    game,
	})
}
