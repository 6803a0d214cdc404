package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
	"github.com/agendaflow/agenda-crm/backend/internal/utils"
)

func (h *Handler) GetClosureRules(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	rules, err := h.repository.GetClosureRules(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Cierres y excepciones obtenidos", rules)
}

func (h *Handler) CreateClosureRule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		ServiceID *int64  `json:"serviceId"`
		StartDate string  `json:"startDate" validate:"required"`
		EndDate   string  `json:"endDate" validate:"required"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		AllDay    bool    `json:"allDay"`
		Kind      string  `json:"kind" validate:"required,oneof=cierre excepcion"`
		Reason    string  `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rule := &domain.ClosureRule{
		ScheduleID: schedule.ID,
		ServiceID:  req.ServiceID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		AllDay:     req.AllDay,
		Kind:       domain.ClosureKind(req.Kind),
		Reason:     req.Reason,
	}

	if err := utils.ValidateClosureRule(rule); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if rule.ServiceID != nil {
		if _, err := h.repository.GetServiceByID(*rule.ServiceID); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "El servicio no existe")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
	}

	if err := h.repository.CreateClosureRule(rule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventClosureChanged, schedule.ID))

	h.successResponse(w, r, "Regla creada", rule)
}

func (h *Handler) DeleteClosureRule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	closureIDParam := chi.URLParam(r, "closureID")
	closureID, err := strconv.ParseInt(closureIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID de regla inválido")
		return
	}

	if err := h.repository.DeleteClosureRule(closureID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventClosureChanged, schedule.ID))

	h.successResponse(w, r, "Regla eliminada", nil)
}
