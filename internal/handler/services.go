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

func (h *Handler) GetAllServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.repository.GetAllServices()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Catálogo de servicios obtenido", services)
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string  `json:"name" validate:"required"`
		DurationMinutes int32   `json:"durationMinutes" validate:"required,min=1"`
		BasePrice       float64 `json:"basePrice" validate:"min=0"`
		Concurrency     int32   `json:"concurrency" validate:"required,min=1"`
		Color           string  `json:"color"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	service := &domain.Service{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		BasePrice:       req.BasePrice,
		Concurrency:     req.Concurrency,
		Color:           req.Color,
	}

	if err := h.repository.CreateService(service); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "services_name_key":
			h.badRequest(w, r, errors.New("Ya existe un servicio con ese nombre"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.hub.Broadcast(domain.GlobalEvent(domain.EventServiceCatalogChanged))

	h.successResponse(w, r, "Servicio creado", service)
}

func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(ServiceCtx).(*domain.Service)
	h.successResponse(w, r, "Servicio obtenido", service)
}

func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            *string  `json:"name"`
		DurationMinutes *int32   `json:"durationMinutes" validate:"omitempty,min=1"`
		BasePrice       *float64 `json:"basePrice" validate:"omitempty,min=0"`
		Concurrency     *int32   `json:"concurrency" validate:"omitempty,min=1"`
		Color           *string  `json:"color"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	service := r.Context().Value(ServiceCtx).(*domain.Service)

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.BasePrice != nil {
		service.BasePrice = *req.BasePrice
	}
	if req.Concurrency != nil {
		service.Concurrency = *req.Concurrency
	}
	if req.Color != nil {
		service.Color = *req.Color
	}

	if err := h.repository.UpdateService(service); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "services_name_key":
			h.badRequest(w, r, errors.New("Ya existe un servicio con ese nombre"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "No se pudo actualizar, intente de nuevo")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.hub.Broadcast(domain.GlobalEvent(domain.EventServiceCatalogChanged))

	h.successResponse(w, r, "Servicio actualizado", service)
}

func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(ServiceCtx).(*domain.Service)

	if err := h.repository.DeleteService(service.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.GlobalEvent(domain.EventServiceCatalogChanged))

	h.successResponse(w, r, "Servicio eliminado", nil)
}

func (h *Handler) GetScheduleServices(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	assignments, err := h.repository.GetServicesForSchedule(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Servicios de la agenda obtenidos", assignments)
}

func (h *Handler) AssignServiceToSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		ServiceID       int64   `json:"serviceId" validate:"required"`
		DiscountPercent float64 `json:"discountPercent" validate:"min=0,max=100"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	service, err := h.repository.GetServiceByID(req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "El servicio no existe")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	assignment := &domain.ScheduleService{
		ScheduleID:      schedule.ID,
		ServiceID:       service.ID,
		DiscountPercent: req.DiscountPercent,
		FinalPrice:      service.BasePrice * (1 - req.DiscountPercent/100),
		Service:         service,
	}

	if err := h.repository.AssignServiceToSchedule(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.GlobalEvent(domain.EventServiceCatalogChanged))

	h.successResponse(w, r, "Servicio asignado a la agenda", assignment)
}

func (h *Handler) UnassignServiceFromSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	serviceIDParam := chi.URLParam(r, "serviceID")
	serviceID, err := strconv.ParseInt(serviceIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID de servicio inválido")
		return
	}

	if err := h.repository.UnassignServiceFromSchedule(schedule.ID, serviceID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.GlobalEvent(domain.EventServiceCatalogChanged))

	h.successResponse(w, r, "Servicio retirado de la agenda", nil)
}
