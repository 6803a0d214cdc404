package domain

type EventType string

// Vocabulario fijo de eventos que el difusor empuja a los espectadores.
const (
	EventAppointmentChanged    EventType = "appointment-changed"
	EventScheduleChanged       EventType = "schedule-changed"
	EventHoursChanged          EventType = "hours-changed"
	EventClosureChanged        EventType = "closure-changed"
	EventServiceCatalogChanged EventType = "service-catalog-changed"
	EventUserRosterChanged     EventType = "user-roster-changed"
)

// Event es la carga que viaja por el websocket. Scope lleva la agenda
// afectada; queda ausente en los eventos globales (catálogo, usuarios).
type Event struct {
	Type  EventType `json:"type"`
	Scope *int64    `json:"scope,omitempty"`
}

// ScopedEvent arma un evento acotado a una agenda.
func ScopedEvent(t EventType, scheduleID int64) Event {
	return Event{Type: t, Scope: &scheduleID}
}

// GlobalEvent arma un evento sin agenda asociada.
func GlobalEvent(t EventType) Event {
	return Event{Type: t}
}
