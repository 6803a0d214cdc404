package booking

import (
	"fmt"

	"github.com/agendaflow/agenda-crm/backend/internal/availability"
	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

// Resolver es el motor de disponibilidad visto desde el orquestador.
type Resolver interface {
	Resolve(schedule *domain.Schedule, serviceName, date, timeOfDay string) (availability.Decision, error)
}

// Store persiste citas; en producción es el repositorio sobre Postgres.
type Store interface {
	CreateAppointment(appointment *domain.Appointment) error
	UpdateAppointment(appointment *domain.Appointment) error
}

// Notifier difunde los cambios comprometidos a los espectadores.
type Notifier interface {
	Broadcast(event domain.Event)
}

// Orchestrator encadena resolver → persistir → difundir. Entre el conteo
// de cupos y la inserción hay una carrera contar-luego-actuar: dos
// peticiones por la misma franja podrían pasar ambas el conteo y violar
// los cupos. El candado por clave de franja mantiene esa secuencia como
// unidad serializable por (agenda, fecha, hora) y se suelta solo después
// de confirmar la escritura.
type Orchestrator struct {
	engine Resolver
	store  Store
	hub    Notifier
	locks  *keyedMutex
}

func NewOrchestrator(engine Resolver, store Store, hub Notifier) *Orchestrator {
	return &Orchestrator{
		engine: engine,
		store:  store,
		hub:    hub,
		locks:  newKeyedMutex(),
	}
}

func slotKey(scheduleID int64, date, timeOfDay string) string {
	return fmt.Sprintf("%d|%s|%s", scheduleID, date, timeOfDay)
}

// Book resuelve la admisibilidad y, si la franja admite, persiste la cita
// y difunde el evento. Un rechazo llega como Decision; un fallo de los
// colaboradores llega como error y no deja cita parcial ni difusión.
func (o *Orchestrator) Book(schedule *domain.Schedule, appointment *domain.Appointment) (availability.Decision, error) {
	unlock := o.locks.Lock(slotKey(schedule.ID, appointment.Date, appointment.Time))
	defer unlock()

	decision, err := o.engine.Resolve(schedule, appointment.ServiceName, appointment.Date, appointment.Time)
	if err != nil {
		return availability.Decision{}, err
	}
	if !decision.Admitted {
		return decision, nil
	}

	if err := o.store.CreateAppointment(appointment); err != nil {
		return availability.Decision{}, err
	}

	o.hub.Broadcast(domain.ScopedEvent(domain.EventAppointmentChanged, schedule.ID))

	return decision, nil
}

// Reschedule aplica una edición administrativa que mueve la cita de
// franja. La decisión de admisibilidad se vuelve a ejecutar completa
// contra la franja destino, bajo su candado; editar los datos de contacto
// no pasa por aquí.
func (o *Orchestrator) Reschedule(schedule *domain.Schedule, appointment *domain.Appointment, date, timeOfDay, serviceName string) (availability.Decision, error) {
	unlock := o.locks.Lock(slotKey(schedule.ID, date, timeOfDay))
	defer unlock()

	decision, err := o.engine.Resolve(schedule, serviceName, date, timeOfDay)
	if err != nil {
		return availability.Decision{}, err
	}
	if !decision.Admitted {
		return decision, nil
	}

	appointment.Date = date
	appointment.Time = timeOfDay
	appointment.ServiceName = serviceName

	if err := o.store.UpdateAppointment(appointment); err != nil {
		return availability.Decision{}, err
	}

	o.hub.Broadcast(domain.ScopedEvent(domain.EventAppointmentChanged, schedule.ID))

	return decision, nil
}
