package domain

import (
	"time"
)

const (
	ConfirmationPending   = "Pendiente"
	ConfirmationConfirmed = "Confirmada"
	ConfirmationCancelled = "Cancelada"
)

// Appointment es una cita ya confirmada contra una agenda. Los campos de
// contacto son opacos para el motor de disponibilidad.
type Appointment struct {
	ID             int64     `json:"id"`
	ScheduleID     int64     `json:"scheduleId"`
	ServiceName    string    `json:"serviceName"` // puede ser vacío para reservas genéricas
	Date           string    `json:"date"`        // YYYY-MM-DD
	Time           string    `json:"time"`        // HH:MM
	FullName       string    `json:"fullName"`
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Notes          string    `json:"notes"`
	Invoice        string    `json:"invoice"`
	Seller         string    `json:"seller"`
	Confirmation   string    `json:"confirmation"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}

// SlotChanged informa si la edición mueve la cita de su franja original,
// en cuyo caso hay que volver a pasar por el motor de disponibilidad.
func (a *Appointment) SlotChanged(date, timeOfDay, serviceName string) bool {
	return a.Date != date || a.Time != timeOfDay || a.ServiceName != serviceName
}
