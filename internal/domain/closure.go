package domain

type ClosureKind string

const (
	// ClosureKindClosure quita disponibilidad en el rango indicado.
	ClosureKindClosure ClosureKind = "cierre"
	// ClosureKindException otorga disponibilidad por encima de horarios y
	// cierres; tiene la máxima precedencia.
	ClosureKindException ClosureKind = "excepcion"
)

// ClosureRule cubre tanto cierres como excepciones. ServiceID en nil
// significa que la regla aplica a todos los servicios de la agenda.
type ClosureRule struct {
	ID         int64       `json:"id"`
	ScheduleID int64       `json:"scheduleId"`
	ServiceID  *int64      `json:"serviceId"`
	StartDate  string      `json:"startDate"` // YYYY-MM-DD, rango inclusivo
	EndDate    string      `json:"endDate"`
	StartTime  *string     `json:"startTime"` // HH:MM, nil cuando AllDay
	EndTime    *string     `json:"endTime"`
	AllDay     bool        `json:"allDay"`
	Kind       ClosureKind `json:"kind"`
	Reason     string      `json:"reason"`
}
