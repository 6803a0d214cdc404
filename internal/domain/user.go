package domain

import (
	"time"
)

type Role string

const (
	RoleSuperuser Role = "superuser"
	RoleAdmin     Role = "admin"
	RoleAgent     Role = "agent"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`

	// Agendas asignadas al usuario; solo se llena en las consultas que lo piden.
	ScheduleIDs []int64 `json:"scheduleIds,omitempty"`
}
