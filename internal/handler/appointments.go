package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/agendaflow/agenda-crm/backend/internal/availability"
	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func (h *Handler) GetAppointmentsByDate(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	date := r.URL.Query().Get("date")
	if _, err := availability.ParseDate(date); err != nil {
		h.badRequest(w, r, err)
		return
	}

	appointments, err := h.repository.GetAppointmentsByScheduleAndDate(schedule.ID, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Citas obtenidas", appointments)
}

// GetPendingConfirmations alimenta el tablero de llamadas: citas de hoy y
// mañana que siguen en estado Pendiente.
func (h *Handler) GetPendingConfirmations(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	now := time.Now()
	today := now.Format(availability.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(availability.DateLayout)

	appointments, err := h.repository.GetPendingConfirmations(schedule.ID, today, tomorrow)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Citas por confirmar obtenidas", appointments)
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		ServiceName    string `json:"serviceName"`
		Date           string `json:"date" validate:"required"`
		Time           string `json:"time" validate:"required"`
		FullName       string `json:"fullName" validate:"required"`
		DocumentType   string `json:"documentType"`
		DocumentNumber string `json:"documentNumber"`
		Phone          string `json:"phone"`
		Email          string `json:"email" validate:"omitempty,email"`
		Notes          string `json:"notes"`
		Invoice        string `json:"invoice"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// Una fecha u hora mal formada es culpa del cliente, no un rechazo
	// del motor
	if _, err := availability.ParseDate(req.Date); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if _, err := availability.ParseTimeOfDay(req.Time); err != nil {
		h.badRequest(w, r, err)
		return
	}

	appointment := &domain.Appointment{
		ScheduleID:     schedule.ID,
		ServiceName:    req.ServiceName,
		Date:           req.Date,
		Time:           req.Time,
		FullName:       req.FullName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Phone:          req.Phone,
		Email:          req.Email,
		Notes:          req.Notes,
		Invoice:        req.Invoice,
		Seller:         myInfo.Username,
		Confirmation:   domain.ConfirmationPending,
	}

	decision, err := h.orchestrator.Book(schedule, appointment)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !decision.Admitted {
		h.rejectionResponse(w, r, decision.Message, string(decision.Code))
		return
	}

	if appointment.Email != "" {
		if err := h.publishBookingConfirmedMail(schedule, appointment); err != nil {
			// La cita ya quedó registrada; el correo fallido no la revierte
			h.logInternalServerError(r, err)
		}
	}

	h.successResponse(w, r, "Cita registrada", appointment)
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	appointment := r.Context().Value(AppointmentCtx).(*domain.Appointment)
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		ServiceName    *string `json:"serviceName"`
		Date           *string `json:"date"`
		Time           *string `json:"time"`
		FullName       *string `json:"fullName"`
		DocumentType   *string `json:"documentType"`
		DocumentNumber *string `json:"documentNumber"`
		Phone          *string `json:"phone"`
		Email          *string `json:"email" validate:"omitempty,email"`
		Notes          *string `json:"notes"`
		Invoice        *string `json:"invoice"`
		Confirmation   *string `json:"confirmation" validate:"omitempty,oneof=Pendiente Confirmada Cancelada"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.FullName != nil {
		appointment.FullName = *req.FullName
	}
	if req.DocumentType != nil {
		appointment.DocumentType = *req.DocumentType
	}
	if req.DocumentNumber != nil {
		appointment.DocumentNumber = *req.DocumentNumber
	}
	if req.Phone != nil {
		appointment.Phone = *req.Phone
	}
	if req.Email != nil {
		appointment.Email = *req.Email
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.Invoice != nil {
		appointment.Invoice = *req.Invoice
	}
	if req.Confirmation != nil {
		appointment.Confirmation = *req.Confirmation
	}

	date := appointment.Date
	if req.Date != nil {
		date = *req.Date
	}
	timeOfDay := appointment.Time
	if req.Time != nil {
		timeOfDay = *req.Time
	}
	serviceName := appointment.ServiceName
	if req.ServiceName != nil {
		serviceName = *req.ServiceName
	}

	// Mover la cita de franja obliga a pasar de nuevo por el motor de
	// disponibilidad contra la franja destino
	if appointment.SlotChanged(date, timeOfDay, serviceName) {
		if _, err := availability.ParseDate(date); err != nil {
			h.badRequest(w, r, err)
			return
		}
		if _, err := availability.ParseTimeOfDay(timeOfDay); err != nil {
			h.badRequest(w, r, err)
			return
		}

		decision, err := h.orchestrator.Reschedule(schedule, appointment, date, timeOfDay, serviceName)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "No se pudo actualizar, intente de nuevo")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		if !decision.Admitted {
			h.rejectionResponse(w, r, decision.Message, string(decision.Code))
			return
		}

		h.successResponse(w, r, "Cita actualizada", appointment)
		return
	}

	if err := h.repository.UpdateAppointment(appointment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "No se pudo actualizar, intente de nuevo")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventAppointmentChanged, schedule.ID))

	h.successResponse(w, r, "Cita actualizada", appointment)
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	appointment := r.Context().Value(AppointmentCtx).(*domain.Appointment)
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if err := h.repository.DeleteAppointment(appointment.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.hub.Broadcast(domain.ScopedEvent(domain.EventAppointmentChanged, schedule.ID))

	h.successResponse(w, r, "Cita eliminada", nil)
}

func (h *Handler) publishBookingConfirmedMail(schedule *domain.Schedule, appointment *domain.Appointment) error {
	mailMessage := domain.MailMessage{
		Type: "booking_confirmed",
		To:   appointment.Email,
		Data: domain.BookingConfirmedMailData{
			FullName:     appointment.FullName,
			ScheduleName: schedule.Name,
			ServiceName:  appointment.ServiceName,
			Date:         appointment.Date,
			Time:         appointment.Time,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
