package handlers

import (
	"net/http"
	"strconv"

	"availability-service/internal/model"
	"availability-service/internal/service"

	"github.com/go-chi/chi/v5"
)

// CreateSlot обрабатывает POST /slots
func (h *Handler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req createSlotRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	slot, err := h.slotService.CreateSlot(r.Context(), *req.DayOfWeek, req.StartTime, req.EndTime, req.Description)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, slot)
}

// ListSlots обрабатывает GET /slots
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.slotService.ListSlots(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	if slots == nil {
		slots = []*model.RecurringSlot{}
	}
	h.respondJSON(w, http.StatusOK, slots)
}

// UpdateSlot обрабатывает PUT /slots/{id}
func (h *Handler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := h.slotID(w, r)
	if !ok {
		return
	}

	var req updateSlotRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	slot, err := h.slotService.UpdateSlot(r.Context(), id, service.SlotPatch{
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, slot)
}

// DeleteSlot обрабатывает DELETE /slots/{id}
func (h *Handler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := h.slotID(w, r)
	if !ok {
		return
	}

	if err := h.slotService.DeleteSlot(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, messageResponse{Message: "Slot deleted"})
}

// CreateException обрабатывает POST /slots/exceptions
func (h *Handler) CreateException(w http.ResponseWriter, r *http.Request) {
	var req createExceptionRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	ex, err := h.slotService.CreateException(
		r.Context(),
		*req.RecurringSlotID,
		req.Date,
		req.StartTime,
		req.EndTime,
		req.IsDeleted,
	)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, ex)
}

// ListExceptions обрабатывает GET /slots/exceptions
func (h *Handler) ListExceptions(w http.ResponseWriter, r *http.Request) {
	exceptions, err := h.slotService.ListExceptions(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	if exceptions == nil {
		exceptions = []*model.SlotException{}
	}
	h.respondJSON(w, http.StatusOK, exceptions)
}

// RemoveException обрабатывает DELETE /slots/{id}/exceptions/{date}:
// возвращает вхождение этой даты к recurring определению
func (h *Handler) RemoveException(w http.ResponseWriter, r *http.Request) {
	id, ok := h.slotID(w, r)
	if !ok {
		return
	}

	date := chi.URLParam(r, "date")
	if err := h.slotService.RemoveException(r.Context(), id, date); err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, messageResponse{Message: "Exception removed"})
}

func (h *Handler) slotID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid slot id")
		return 0, false
	}
	return id, true
}
