package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/what2play/api/internal/core/domain"
	"github.com/what2play/api/internal/core/ports"
)

const (
	searchResultLimit = 20
	randomResultLimit = 10
)

type GameHandler struct {
	catalog ports.CatalogClient
}

func NewGameHandler(catalog ports.CatalogClient) *GameHandler {
	return &GameHandler{
		catalog: catalog,
	}
}

// Search distinguishes "no matches" (200 with an empty list) from an
// upstream failure (502).
func (h *GameHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	games, err := h.catalog.Search(r.Context(), query, searchResultLimit)
	if err != nil {
		h.catalogError(w, err)
		return
	}
	if games == nil {
		games = []domain.CatalogGame{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"games": games})
}

func (h *GameHandler) Random(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalog.Random(r.Context(), randomResultLimit)
	if err != nil {
		h.catalogError(w, err)
		return
	}
	if games == nil {
		games = []domain.CatalogGame{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"games": games})
}

func (h *GameHandler) catalogError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrCatalogUnavailable) {
		writeError(w, http.StatusBadGateway, "Game catalog unavailable")
		return
	}
	writeError(w, http.StatusInternalServerError, "Failed to fetch games")
}
