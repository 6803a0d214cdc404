package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func (h *Handler) GetActiveAlerts(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	alerts, err := h.repository.GetActiveAlerts(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Alertas obtenidas", alerts)
}

func (h *Handler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		Message string `json:"message" validate:"required"`
		Type    string `json:"type" validate:"required,oneof=warning info"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	alert := &domain.Alert{
		ScheduleID: schedule.ID,
		Message:    req.Message,
		Type:       req.Type,
		Active:     true,
	}

	if err := h.repository.CreateAlert(alert); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventScheduleChanged, schedule.ID))

	h.successResponse(w, r, "Alerta creada", alert)
}

func (h *Handler) DeactivateAlert(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	alertIDParam := chi.URLParam(r, "alertID")
	alertID, err := strconv.ParseInt(alertIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID de alerta inválido")
		return
	}

	if err := h.repository.DeactivateAlert(alertID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventScheduleChanged, schedule.ID))

	h.successResponse(w, r, "Alerta desactivada", nil)
}
