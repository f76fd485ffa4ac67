package handlers

import "net/http"

// GetWeek обрабатывает GET /week?start_date=YYYY-MM-DD
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	if startDate == "" {
		h.respondError(w, http.StatusBadRequest, "start_date is required")
		return
	}

	week, err := h.weekService.ResolveWeek(r.Context(), startDate)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, week)
}
