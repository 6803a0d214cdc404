// Package seed arma un juego de datos de demostración coherente: una
// agenda con horarios, servicios, reglas y citas, lista para recorrer el
// flujo completo de reservas sin cargar datos a mano.
package seed

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
	"github.com/agendaflow/agenda-crm/backend/internal/repository"
	"github.com/agendaflow/agenda-crm/backend/internal/utils"
)

func SeedDemoData(r *repository.Repository) {
	schedule := &domain.Schedule{
		Name:            "Sede Centro",
		Description:     "Agenda de demostración",
		CapacityPerSlot: 3,
	}
	if err := r.CreateSchedule(schedule); err != nil {
		slog.Error("no se pudo crear la agenda de demostración", "error", err)
		return
	}

	// Lunes a viernes jornada partida, sábado solo mañana
	for weekday := int32(0); weekday <= 4; weekday++ {
		windows := []*domain.BusinessHourWindow{
			{ScheduleID: schedule.ID, Weekday: weekday, StartTime: "08:00", EndTime: "12:00"},
			{ScheduleID: schedule.ID, Weekday: weekday, StartTime: "14:00", EndTime: "18:00"},
		}
		for _, w := range windows {
			if err := r.CreateBusinessHourWindow(w); err != nil {
				slog.Error("no se pudo crear la franja horaria", "error", err)
				return
			}
		}
	}
	saturday := &domain.BusinessHourWindow{ScheduleID: schedule.ID, Weekday: 5, StartTime: "09:00", EndTime: "13:00"}
	if err := r.CreateBusinessHourWindow(saturday); err != nil {
		slog.Error("no se pudo crear la franja del sábado", "error", err)
		return
	}

	services := []*domain.Service{
		{Name: "Consulta general", DurationMinutes: 30, BasePrice: 80000, Concurrency: 2, Color: "#2b6cb0"},
		{Name: "Limpieza dental", DurationMinutes: 45, BasePrice: 120000, Concurrency: 1, Color: "#2f855a"},
		{Name: "Valoración inicial", DurationMinutes: 20, BasePrice: 50000, Concurrency: 3, Color: "#b7791f"},
	}
	for _, svc := range services {
		if err := r.CreateService(svc); err != nil {
			slog.Error("no se pudo crear el servicio", "name", svc.Name, "error", err)
			return
		}

		assignment := &domain.ScheduleService{
			ScheduleID: schedule.ID,
			ServiceID:  svc.ID,
			FinalPrice: svc.BasePrice,
		}
		if err := r.AssignServiceToSchedule(assignment); err != nil {
			slog.Error("no se pudo asignar el servicio a la agenda", "name", svc.Name, "error", err)
			return
		}
	}

	// La limpieza dental solo se atiende por la mañana
	for weekday := int32(0); weekday <= 4; weekday++ {
		window := &domain.ServiceHourWindow{
			ScheduleID: schedule.ID,
			ServiceID:  services[1].ID,
			Weekday:    weekday,
			StartTime:  "08:00",
			EndTime:    "12:00",
		}
		if err := r.CreateServiceHourWindow(window); err != nil {
			slog.Error("no se pudo crear el horario del servicio", "error", err)
			return
		}
	}

	// Un cierre de media jornada la próxima semana
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	startTime, endTime := "14:00", "18:00"
	closure := &domain.ClosureRule{
		ScheduleID: schedule.ID,
		StartDate:  nextWeek,
		EndDate:    nextWeek,
		StartTime:  &startTime,
		EndTime:    &endTime,
		Kind:       domain.ClosureKindClosure,
		Reason:     "Jornada de capacitación",
	}
	if err := r.CreateClosureRule(closure); err != nil {
		slog.Error("no se pudo crear el cierre de demostración", "error", err)
		return
	}

	alert := &domain.Alert{
		ScheduleID: schedule.ID,
		Message:    "Confirmar las citas del día antes de las 10:00",
		Type:       "info",
		Active:     true,
	}
	if err := r.CreateAlert(alert); err != nil {
		slog.Error("no se pudo crear la alerta de demostración", "error", err)
		return
	}

	// Algunas citas para mañana
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	cnt := 0
	for i := 0; i < 5; i++ {
		svc := services[i%len(services)]
		appointment := utils.GenerateRandomAppointment(schedule.ID, svc.Name, tomorrow)
		if err := r.CreateAppointment(appointment); err != nil {
			slog.Error("no se pudo crear la cita de demostración", "error", err)
			continue
		}
		cnt++
	}

	slog.Info("datos de demostración cargados",
		"schedule", schedule.Name,
		"services", len(services),
		"appointments", fmt.Sprintf("%d para %s", cnt, tomorrow),
	)
}
