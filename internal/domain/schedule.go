package domain

import (
	"time"
)

type Schedule struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CapacityPerSlot int32     `json:"capacityPerSlot"` // citas simultáneas en un mismo día+hora, sin importar el servicio
	CreatedAt       time.Time `json:"createdAt"`
	Version         int32     `json:"-"`
}
