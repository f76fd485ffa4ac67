package controller

import (
	"net/http"

	"availability-service/internal/controller/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter собирает роутер API расписания
func NewRouter(h *handlers.Handler, corsOrigin string, logger *zap.Logger) *chi.Mux {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	router.Use(RequestID)
	router.Use(RequestLogger(logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/slots", func(r chi.Router) {
		r.Post("/", h.CreateSlot)
		r.Get("/", h.ListSlots)

		r.Post("/exceptions", h.CreateException)
		r.Get("/exceptions", h.ListExceptions)

		r.Put("/{id}", h.UpdateSlot)
		r.Delete("/{id}", h.DeleteSlot)
		r.Delete("/{id}/exceptions/{date}", h.RemoveException)
	})

	router.Get("/week", h.GetWeek)

	return router
}
