package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

// ValidateHourRange comprueba que ambas horas estén bien formadas y que el
// fin quede estrictamente después del inicio.
func ValidateHourRange(startTime, endTime string) error {
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return fmt.Errorf("la hora de inicio %q no tiene el formato HH:MM", startTime)
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return fmt.Errorf("la hora de fin %q no tiene el formato HH:MM", endTime)
	}
	if !end.After(start) {
		return errors.New("la hora de fin debe ser posterior a la de inicio")
	}
	return nil
}

// ValidateClosureRule comprueba la coherencia interna de un cierre o una
// excepción: fechas bien formadas y en orden, y o bien es de día completo
// o bien trae un rango horario válido.
func ValidateClosureRule(rule *domain.ClosureRule) error {
	start, err := time.Parse("2006-01-02", rule.StartDate)
	if err != nil {
		return fmt.Errorf("la fecha de inicio %q no tiene el formato AAAA-MM-DD", rule.StartDate)
	}
	end, err := time.Parse("2006-01-02", rule.EndDate)
	if err != nil {
		return fmt.Errorf("la fecha de fin %q no tiene el formato AAAA-MM-DD", rule.EndDate)
	}
	if end.Before(start) {
		return errors.New("la fecha de fin no puede ser anterior a la de inicio")
	}

	if rule.AllDay {
		return nil
	}

	if rule.StartTime == nil || rule.EndTime == nil {
		return errors.New("una regla que no es de día completo necesita hora de inicio y de fin")
	}

	return ValidateHourRange(*rule.StartTime, *rule.EndTime)
}
