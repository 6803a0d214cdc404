package availability

import (
	"fmt"
	"time"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimeOfDay son los minutos transcurridos desde la medianoche.
type TimeOfDay int

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: se espera AAAA-MM-DD", s)
	}
	return d, nil
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("hora inválida %q: se espera HH:MM", s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// WeekdayOf convierte al convenio 0=lunes .. 6=domingo.
func WeekdayOf(date time.Time) int32 {
	return int32((int(date.Weekday()) + 6) % 7)
}

// dateInRange aprovecha que las fechas ISO comparan bien como texto.
// El rango es inclusivo en ambos extremos.
func dateInRange(date, startDate, endDate string) bool {
	return startDate <= date && date <= endDate
}

// timeInWindow comprueba inicio <= t < fin. Las franjas horarias excluyen
// el extremo final: una agenda de 08:00 a 12:00 no recibe citas a las 12:00.
func timeInWindow(t TimeOfDay, startTime, endTime string) bool {
	start, err := ParseTimeOfDay(startTime)
	if err != nil {
		return false
	}
	end, err := ParseTimeOfDay(endTime)
	if err != nil {
		return false
	}
	return start <= t && t < end
}

// ruleMatchesMoment informa si una regla de cierre/excepción cubre el punto
// (fecha, hora): el rango de fechas debe contener la fecha y, salvo que la
// regla sea de día completo, el rango horario debe contener la hora.
func ruleMatchesMoment(rule *domain.ClosureRule, date string, t TimeOfDay) bool {
	if !dateInRange(date, rule.StartDate, rule.EndDate) {
		return false
	}
	if rule.AllDay {
		return true
	}
	if rule.StartTime == nil || rule.EndTime == nil {
		return false
	}
	return timeInWindow(t, *rule.StartTime, *rule.EndTime)
}

// ruleAppliesToService: una regla sin servicio aplica a toda la agenda; una
// regla con servicio solo aplica a ese servicio.
func ruleAppliesToService(rule *domain.ClosureRule, svc *domain.Service) bool {
	if rule.ServiceID == nil {
		return true
	}
	return svc != nil && *rule.ServiceID == svc.ID
}
