package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func TestValidateHourRange(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		wantErr   bool
	}{
		{"rango válido", "08:00", "12:00", false},
		{"un minuto también vale", "08:00", "08:01", false},
		{"inicio mal formado", "8am", "12:00", true},
		{"fin mal formado", "08:00", "mediodía", true},
		{"fin igual al inicio", "08:00", "08:00", true},
		{"fin antes del inicio", "12:00", "08:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHourRange(tt.startTime, tt.endTime)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateClosureRule(t *testing.T) {
	at := func(s string) *string { return &s }

	tests := []struct {
		name    string
		rule    domain.ClosureRule
		wantErr bool
	}{
		{
			"día completo",
			domain.ClosureRule{StartDate: "2026-09-01", EndDate: "2026-09-03", AllDay: true},
			false,
		},
		{
			"rango horario válido",
			domain.ClosureRule{StartDate: "2026-09-01", EndDate: "2026-09-01", StartTime: at("14:00"), EndTime: at("18:00")},
			false,
		},
		{
			"fecha de inicio mal formada",
			domain.ClosureRule{StartDate: "01/09/2026", EndDate: "2026-09-03", AllDay: true},
			true,
		},
		{
			"fecha de fin mal formada",
			domain.ClosureRule{StartDate: "2026-09-01", EndDate: "mañana", AllDay: true},
			true,
		},
		{
			"fechas desordenadas",
			domain.ClosureRule{StartDate: "2026-09-03", EndDate: "2026-09-01", AllDay: true},
			true,
		},
		{
			"sin horas y sin ser de día completo",
			domain.ClosureRule{StartDate: "2026-09-01", EndDate: "2026-09-01"},
			true,
		},
		{
			"falta la hora de fin",
			domain.ClosureRule{StartDate: "2026-09-01", EndDate: "2026-09-01", StartTime: at("14:00")},
			true,
		},
		{
			"horas desordenadas",
			domain.ClosureRule{StartDate: "2026-09-01", EndDate: "2026-09-01", StartTime: at("18:00"), EndTime: at("14:00")},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClosureRule(&tt.rule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
