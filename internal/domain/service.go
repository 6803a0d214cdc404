package domain

import (
	"time"
)

type Service struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int32     `json:"durationMinutes"`
	BasePrice       float64   `json:"basePrice"`
	Concurrency     int32     `json:"concurrency"` // citas simultáneas de este servicio en un mismo día+hora dentro de una agenda
	Color           string    `json:"color"`
	CreatedAt       time.Time `json:"createdAt"`
	Version         int32     `json:"-"`
}

// ScheduleService es la asignación de un servicio del catálogo a una agenda,
// con su precio propio (descuento sobre el precio base).
type ScheduleService struct {
	ID              int64    `json:"id"`
	ScheduleID      int64    `json:"scheduleId"`
	ServiceID       int64    `json:"serviceId"`
	DiscountPercent float64  `json:"discountPercent"`
	FinalPrice      float64  `json:"finalPrice"`
	Active          bool     `json:"active"`
	Service         *Service `json:"service,omitempty"`
}
