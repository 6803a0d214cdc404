// Package policy concentra la autorización por rol que antes vivía
// desperdigada en cada operación: una tabla pequeña de
// (rol, acción, propiedad del recurso) → permitir o negar, que se prueba
// sola, sin pasar por la lógica de reservas.
package policy

import (
	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

type Action string

const (
	// Gestión de usuarios y sus asignaciones a agendas.
	ActionManageUsers Action = "manage_users"
	// Altas, bajas y edición de agendas.
	ActionManageSchedules Action = "manage_schedules"
	// Catálogo global de servicios y su asignación a agendas.
	ActionManageCatalog Action = "manage_catalog"
	// Horarios, cierres, excepciones y alertas de una agenda.
	ActionManageScheduleRules Action = "manage_schedule_rules"
	// Crear, editar y cancelar citas de una agenda.
	ActionBookAppointments Action = "book_appointments"
	// Consultar agendas, citas y reglas.
	ActionViewSchedule Action = "view_schedule"
)

// Allow decide si el rol puede ejecutar la acción. ownsResource indica que
// el recurso (la agenda) está asignado al usuario; para las acciones
// globales el valor se ignora.
func Allow(role domain.Role, action Action, ownsResource bool) bool {
	if role == domain.RoleSuperuser {
		return true
	}

	switch action {
	case ActionManageUsers, ActionManageSchedules:
		return false
	case ActionManageCatalog:
		return role == domain.RoleAdmin
	case ActionManageScheduleRules:
		return role == domain.RoleAdmin && ownsResource
	case ActionBookAppointments, ActionViewSchedule:
		return ownsResource
	default:
		return false
	}
}
