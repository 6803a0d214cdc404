package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func TestAllow(t *testing.T) {
	tests := []struct {
		name   string
		role   domain.Role
		action Action
		owns   bool
		want   bool
	}{
		{"superusuario gestiona usuarios", domain.RoleSuperuser, ActionManageUsers, false, true},
		{"superusuario gestiona agendas ajenas", domain.RoleSuperuser, ActionManageScheduleRules, false, true},
		{"superusuario reserva sin asignación", domain.RoleSuperuser, ActionBookAppointments, false, true},

		{"admin no gestiona usuarios", domain.RoleAdmin, ActionManageUsers, true, false},
		{"admin no gestiona agendas", domain.RoleAdmin, ActionManageSchedules, true, false},
		{"admin gestiona el catálogo", domain.RoleAdmin, ActionManageCatalog, false, true},
		{"admin configura su agenda", domain.RoleAdmin, ActionManageScheduleRules, true, true},
		{"admin no configura agendas ajenas", domain.RoleAdmin, ActionManageScheduleRules, false, false},
		{"admin reserva en su agenda", domain.RoleAdmin, ActionBookAppointments, true, true},
		{"admin no reserva en agendas ajenas", domain.RoleAdmin, ActionBookAppointments, false, false},
		{"admin consulta su agenda", domain.RoleAdmin, ActionViewSchedule, true, true},

		{"agente no gestiona usuarios", domain.RoleAgent, ActionManageUsers, true, false},
		{"agente no gestiona el catálogo", domain.RoleAgent, ActionManageCatalog, true, false},
		{"agente no configura su agenda", domain.RoleAgent, ActionManageScheduleRules, true, false},
		{"agente reserva en su agenda", domain.RoleAgent, ActionBookAppointments, true, true},
		{"agente no reserva en agendas ajenas", domain.RoleAgent, ActionBookAppointments, false, false},
		{"agente consulta su agenda", domain.RoleAgent, ActionViewSchedule, true, true},
		{"agente no consulta agendas ajenas", domain.RoleAgent, ActionViewSchedule, false, false},

		{"acción desconocida se niega", domain.RoleAdmin, Action("deploy"), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.role, tt.action, tt.owns))
		})
	}
}
