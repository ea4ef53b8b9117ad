package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/medfluent/internal/api/middleware"
	"github.com/phrazzld/medfluent/internal/api/shared"
)

// NewRouter registers the learner endpoints and the health check.
func NewRouter(h *LearnerHandler, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(log))

	r.Route("/api", func(r chi.Router) {
		r.Get("/units", h.ListUnits)
		r.Get("/units/{unitID}", h.GetUnit)
		r.Get("/units/{unitID}/lessons/{lessonID}", h.GetLesson)

		r.Post("/lessons/{lessonID}/answers", h.SubmitAnswer)
		r.Post("/lessons/{lessonID}/complete", h.CompleteLesson)

		r.Get("/wallet", h.GetWallet)
		r.Post("/hearts/lose", h.LoseHeart)
		r.Post("/hearts/gain", h.GainHeart)

		r.Get("/goals", h.GetGoals)
		r.Post("/goals/speaking", h.RecordSpeaking)
		r.Post("/day", h.StartNewDay)

		r.Get("/inventory", h.GetInventory)
		r.Post("/inventory/equip", h.Equip)

		r.Get("/shop", h.ListShop)
		r.Post("/shop/{itemID}/purchase", h.PurchaseItem)

		r.Get("/events", h.RecentEvents)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
	})

	return r
}
