package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name" validate:"required"`
		Description     string `json:"description"`
		CapacityPerSlot int32  `json:"capacityPerSlot" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule := &domain.Schedule{
		Name:            req.Name,
		Description:     req.Description,
		CapacityPerSlot: req.CapacityPerSlot,
	}

	if err := h.repository.CreateSchedule(schedule); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "schedules_name_key":
			h.badRequest(w, r, errors.New("Ya existe una agenda con ese nombre"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventScheduleChanged, schedule.ID))

	h.successResponse(w, r, "Agenda creada", schedule)
}

// GetMySchedules devuelve todas las agendas al superusuario y solo las
// asignadas al resto.
func (h *Handler) GetMySchedules(w http.ResponseWriter, r *http.Request) {
	roleCtx := r.Context().Value(RoleCtxKey).(string)

	if domain.Role(roleCtx) == domain.RoleSuperuser {
		schedules, err := h.repository.GetAllSchedules()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.successResponse(w, r, "Agendas obtenidas", schedules)
		return
	}

	subString := r.Context().Value(SubCtxKey).(string)
	sub, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	schedules, err := h.repository.GetSchedulesForUser(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Agendas obtenidas", schedules)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)
	h.successResponse(w, r, "Agenda obtenida", schedule)
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            *string `json:"name"`
		Description     *string `json:"description"`
		CapacityPerSlot *int32  `json:"capacityPerSlot" validate:"omitempty,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if req.Name != nil {
		schedule.Name = *req.Name
	}
	if req.Description != nil {
		schedule.Description = *req.Description
	}
	if req.CapacityPerSlot != nil {
		schedule.CapacityPerSlot = *req.CapacityPerSlot
	}

	if err := h.repository.UpdateSchedule(schedule); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "No se pudo actualizar, intente de nuevo")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventScheduleChanged, schedule.ID))

	h.successResponse(w, r, "Agenda actualizada", schedule)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if err := h.repository.DeleteSchedule(schedule.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventScheduleChanged, schedule.ID))

	h.successResponse(w, r, "Agenda eliminada", nil)
}

func (h *Handler) AssignUserToSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	userIDParam := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID de usuario inválido")
		return
	}

	if _, err := h.repository.GetUserByID(userID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "El usuario no existe")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.AssignUserToSchedule(userID, schedule.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.GlobalEvent(domain.EventUserRosterChanged))

	h.successResponse(w, r, "Usuario asignado a la agenda", nil)
}

func (h *Handler) UnassignUserFromSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	userIDParam := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID de usuario inválido")
		return
	}

	if err := h.repository.UnassignUserFromSchedule(userID, schedule.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.GlobalEvent(domain.EventUserRosterChanged))

	h.successResponse(w, r, "Usuario retirado de la agenda", nil)
}
