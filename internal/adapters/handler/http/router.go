package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/what2play/api/internal/core/ports"
)

func NewHandler(
	authHandler *AuthHandler,
	pollHandler *PollHandler,
	voteHandler *VoteHandler,
	historyHandler *HistoryHandler,
	gameHandler *GameHandler,
	authService ports.AuthService,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(CORS(allowedOrigins))

	requireAuth := RequireAuth(authService)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/refresh", authHandler.Refresh)
			r.With(requireAuth).Get("/me", authHandler.Me)
		})

		r.Route("/polls", func(r chi.Router) {
			r.With(requireAuth).Post("/", pollHandler.CreatePoll)
			r.With(requireAuth).Get("/history", historyHandler.GetHistory)
			r.Get("/{id}", pollHandler.GetPoll)
			r.With(requireAuth).Post("/{id}/games", pollHandler.AddGame)
			r.With(requireAuth).Post("/{id}/games/{gameID}/vote", voteHandler.ToggleVote)
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/search", gameHandler.Search)
			r.Get("/random", gameHandler.Random)
		})
	})

	return r
}
