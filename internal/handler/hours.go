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

func (h *Handler) GetBusinessHours(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	windows, err := h.repository.GetBusinessHourWindows(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Horario de atención obtenido", windows)
}

func (h *Handler) CreateBusinessHour(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		Weekday   int32  `json:"weekday" validate:"min=0,max=6"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateHourRange(req.StartTime, req.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	window := &domain.BusinessHourWindow{
		ScheduleID: schedule.ID,
		Weekday:    req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}

	if err := h.repository.CreateBusinessHourWindow(window); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventHoursChanged, schedule.ID))

	h.successResponse(w, r, "Franja horaria creada", window)
}

func (h *Handler) DeleteBusinessHour(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	hourIDParam := chi.URLParam(r, "hourID")
	hourID, err := strconv.ParseInt(hourIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID de franja inválido")
		return
	}

	if err := h.repository.DeleteBusinessHourWindow(hourID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventHoursChanged, schedule.ID))

	h.successResponse(w, r, "Franja horaria eliminada", nil)
}

// ReplaceBusinessHoursByWeekday sustituye el horario de un día completo
// por el conjunto de franjas recibido, de forma atómica.
func (h *Handler) ReplaceBusinessHoursByWeekday(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	weekdayParam := chi.URLParam(r, "weekday")
	weekday, err := strconv.ParseInt(weekdayParam, 10, 32)
	if err != nil || weekday < 0 || weekday > 6 {
		h.errorResponse(w, r, "Día de la semana inválido")
		return
	}

	var req struct {
		Windows []struct {
			StartTime string `json:"startTime" validate:"required"`
			EndTime   string `json:"endTime" validate:"required"`
		} `json:"windows" validate:"dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	windows := make([]*domain.BusinessHourWindow, 0, len(req.Windows))
	for _, win := range req.Windows {
		if err := utils.ValidateHourRange(win.StartTime, win.EndTime); err != nil {
			h.badRequest(w, r, err)
			return
		}
		windows = append(windows, &domain.BusinessHourWindow{
			StartTime: win.StartTime,
			EndTime:   win.EndTime,
		})
	}

	if err := h.repository.ReplaceBusinessHourWindowsForWeekday(schedule.ID, int32(weekday), windows); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventHoursChanged, schedule.ID))

	h.successResponse(w, r, "Horario del día actualizado", windows)
}

// DeleteBusinessHoursByWeekday vacía el horario de un día completo; el
// frontend reemplaza el día borrando y volviendo a crear las franjas.
func (h *Handler) DeleteBusinessHoursByWeekday(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	weekdayParam := chi.URLParam(r, "weekday")
	weekday, err := strconv.ParseInt(weekdayParam, 10, 32)
	if err != nil || weekday < 0 || weekday > 6 {
		h.errorResponse(w, r, "Día de la semana inválido")
		return
	}

	if err := h.repository.DeleteBusinessHourWindowsByWeekday(schedule.ID, int32(weekday)); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventHoursChanged, schedule.ID))

	h.successResponse(w, r, "Horario del día eliminado", nil)
}

func (h *Handler) GetServiceHours(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	windows, err := h.repository.GetServiceHourWindows(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Horarios por servicio obtenidos", windows)
}

func (h *Handler) CreateServiceHour(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		ServiceID int64  `json:"serviceId" validate:"required"`
		Weekday   int32  `json:"weekday" validate:"min=0,max=6"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateHourRange(req.StartTime, req.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := h.repository.GetServiceByID(req.ServiceID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "El servicio no existe")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	window := &domain.ServiceHourWindow{
		ScheduleID: schedule.ID,
		ServiceID:  req.ServiceID,
		Weekday:    req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}

	if err := h.repository.CreateServiceHourWindow(window); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventHoursChanged, schedule.ID))

	h.successResponse(w, r, "Franja del servicio creada", window)
}

func (h *Handler) DeleteServiceHour(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	hourIDParam := chi.URLParam(r, "hourID")
	hourID, err := strconv.ParseInt(hourIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID de franja inválido")
		return
	}

	if err := h.repository.DeleteServiceHourWindow(hourID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventHoursChanged, schedule.ID))

	h.successResponse(w, r, "Franja del servicio eliminada", nil)
}
