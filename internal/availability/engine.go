package availability

import (
	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

// RuleSource entrega las reglas vigentes de una agenda. ServiceByName
// devuelve (nil, nil) cuando el servicio no existe en el catálogo.
type RuleSource interface {
	BusinessHourWindowsByWeekday(scheduleID int64, weekday int32) ([]*domain.BusinessHourWindow, error)
	ServiceHourWindowsByWeekday(scheduleID int64, serviceID int64, weekday int32) ([]*domain.ServiceHourWindow, error)
	ClosureRulesForDate(scheduleID int64, date string) ([]*domain.ClosureRule, error)
	ServiceByName(name string) (*domain.Service, error)
}

// Counter cuenta las citas comprometidas (no canceladas) en una franja.
type Counter interface {
	CountAtSlot(scheduleID int64, date, timeOfDay string) (int32, error)
	CountAtSlotForService(scheduleID int64, date, timeOfDay, serviceName string) (int32, error)
}

// Engine decide si una franja admite una cita. Es una función pura sobre
// sus entradas y la foto de reglas que entregan sus colaboradores: no
// escribe nada.
type Engine struct {
	rules   RuleSource
	counter Counter
}

func NewEngine(rules RuleSource, counter Counter) *Engine {
	return &Engine{
		rules:   rules,
		counter: counter,
	}
}

// Resolve evalúa las capas en orden estricto y la primera capa decisiva
// gana:
//
//  1. Excepciones: si alguna habilita la franja se saltan horarios y
//     cierres (su propósito es abrir por encima de ellos), pero nunca los
//     cupos.
//  2. Horario general del día de la semana.
//  3. Horario propio del servicio, que estrecha el general y nunca lo
//     amplía.
//  4. Cierres.
//  5. Cupo global de la agenda.
//  6. Concurrencia del servicio.
//
// Una fecha u hora mal formada es un error del llamador, no un rechazo.
func (e *Engine) Resolve(schedule *domain.Schedule, serviceName, date, timeOfDay string) (Decision, error) {
	day, err := ParseDate(date)
	if err != nil {
		return Decision{}, err
	}
	t, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return Decision{}, err
	}
	weekday := WeekdayOf(day)

	var svc *domain.Service
	if serviceName != "" {
		svc, err = e.rules.ServiceByName(serviceName)
		if err != nil {
			return Decision{}, err
		}
	}

	rules, err := e.rules.ClosureRulesForDate(schedule.ID, date)
	if err != nil {
		return Decision{}, err
	}

	// 1. Excepciones
	granted := false
	for _, rule := range rules {
		if rule.Kind != domain.ClosureKindException {
			continue
		}
		if ruleAppliesToService(rule, svc) && ruleMatchesMoment(rule, date, t) {
			granted = true
			break
		}
	}

	if !granted {
		// 2. Horario general
		windows, err := e.rules.BusinessHourWindowsByWeekday(schedule.ID, weekday)
		if err != nil {
			return Decision{}, err
		}
		if len(windows) == 0 {
			return reject(ReasonScheduleClosed), nil
		}
		inside := false
		for _, w := range windows {
			if timeInWindow(t, w.StartTime, w.EndTime) {
				inside = true
				break
			}
		}
		if !inside {
			return reject(ReasonOutsideBusinessHours), nil
		}

		// 3. Horario del servicio
		if svc != nil {
			serviceWindows, err := e.rules.ServiceHourWindowsByWeekday(schedule.ID, svc.ID, weekday)
			if err != nil {
				return Decision{}, err
			}
			// Sin franjas propias ese día, vale el resultado de la capa 2
			if len(serviceWindows) > 0 {
				inside := false
				for _, w := range serviceWindows {
					if timeInWindow(t, w.StartTime, w.EndTime) {
						inside = true
						break
					}
				}
				if !inside {
					return reject(ReasonServiceNotOffered), nil
				}
			}
		}

		// 4. Cierres
		for _, rule := range rules {
			if rule.Kind != domain.ClosureKindClosure {
				continue
			}
			if ruleAppliesToService(rule, svc) && ruleMatchesMoment(rule, date, t) {
				return reject(ReasonTimeBlocked), nil
			}
		}
	}

	// 5. Cupo global
	count, err := e.counter.CountAtSlot(schedule.ID, date, timeOfDay)
	if err != nil {
		return Decision{}, err
	}
	if count >= schedule.CapacityPerSlot {
		return reject(ReasonNoSlotsAvailable), nil
	}

	// 6. Concurrencia del servicio; un nombre que no resuelve a un servicio
	// del catálogo solo enfrenta el cupo global
	if svc != nil {
		count, err := e.counter.CountAtSlotForService(schedule.ID, date, timeOfDay, serviceName)
		if err != nil {
			return Decision{}, err
		}
		if count >= svc.Concurrency {
			return reject(ReasonServiceLimitReached), nil
		}
	}

	return admit(), nil
}
