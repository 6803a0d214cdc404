package availability

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

// 2026-08-24 es lunes (día 0) y 2026-08-30 es domingo (día 6).
const (
	monday = "2026-08-24"
	sunday = "2026-08-30"
)

type fakeRules struct {
	business map[int32][]*domain.BusinessHourWindow
	service  map[int64]map[int32][]*domain.ServiceHourWindow
	closures []*domain.ClosureRule
	services map[string]*domain.Service
}

func (f *fakeRules) BusinessHourWindowsByWeekday(scheduleID int64, weekday int32) ([]*domain.BusinessHourWindow, error) {
	return f.business[weekday], nil
}

func (f *fakeRules) ServiceHourWindowsByWeekday(scheduleID, serviceID int64, weekday int32) ([]*domain.ServiceHourWindow, error) {
	return f.service[serviceID][weekday], nil
}

func (f *fakeRules) ClosureRulesForDate(scheduleID int64, date string) ([]*domain.ClosureRule, error) {
	rules := make([]*domain.ClosureRule, 0)
	for _, rule := range f.closures {
		if rule.StartDate <= date && date <= rule.EndDate {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func (f *fakeRules) ServiceByName(name string) (*domain.Service, error) {
	return f.services[name], nil
}

type fakeCounter struct {
	total     map[string]int32
	byService map[string]int32
}

func (f *fakeCounter) CountAtSlot(scheduleID int64, date, timeOfDay string) (int32, error) {
	return f.total[date+"|"+timeOfDay], nil
}

func (f *fakeCounter) CountAtSlotForService(scheduleID int64, date, timeOfDay, serviceName string) (int32, error) {
	return f.byService[date+"|"+timeOfDay+"|"+serviceName], nil
}

func window(weekday int32, start, end string) *domain.BusinessHourWindow {
	return &domain.BusinessHourWindow{Weekday: weekday, StartTime: start, EndTime: end}
}

// newTestRules arma una agenda abierta de lunes a viernes de 08:00 a 18:00
// con un servicio Consulta de concurrencia 1.
func newTestRules() *fakeRules {
	business := make(map[int32][]*domain.BusinessHourWindow)
	for d := int32(0); d <= 4; d++ {
		business[d] = []*domain.BusinessHourWindow{window(d, "08:00", "18:00")}
	}

	return &fakeRules{
		business: business,
		service:  make(map[int64]map[int32][]*domain.ServiceHourWindow),
		services: map[string]*domain.Service{
			"Consulta": {ID: 1, Name: "Consulta", Concurrency: 1},
		},
	}
}

func newTestEngine(rules *fakeRules, counter *fakeCounter) *Engine {
	if counter == nil {
		counter = &fakeCounter{total: map[string]int32{}, byService: map[string]int32{}}
	}
	return NewEngine(rules, counter)
}

func testSchedule(capacity int32) *domain.Schedule {
	return &domain.Schedule{ID: 1, Name: "Sede Centro", CapacityPerSlot: capacity}
}

func TestResolveAdmitsInsideBusinessHours(t *testing.T) {
	engine := newTestEngine(newTestRules(), nil)

	decision, err := engine.Resolve(testSchedule(3), "", monday, "10:00")
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
	assert.Empty(t, decision.Code)
}

func TestResolveClosedDay(t *testing.T) {
	engine := newTestEngine(newTestRules(), nil)

	decision, err := engine.Resolve(testSchedule(3), "", sunday, "10:00")
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
	assert.Equal(t, ReasonScheduleClosed, decision.Code)
	assert.NotEmpty(t, decision.Message)
}

func TestResolveOutsideBusinessHours(t *testing.T) {
	engine := newTestEngine(newTestRules(), nil)

	decision, err := engine.Resolve(testSchedule(3), "", monday, "19:00")
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
	assert.Equal(t, ReasonOutsideBusinessHours, decision.Code)
}

func TestResolveWindowEndIsExclusive(t *testing.T) {
	engine := newTestEngine(newTestRules(), nil)

	decision, err := engine.Resolve(testSchedule(3), "", monday, "18:00")
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
	assert.Equal(t, ReasonOutsideBusinessHours, decision.Code)

	decision, err = engine.Resolve(testSchedule(3), "", monday, "08:00")
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
}

func TestResolveServiceHoursNarrowBusinessHours(t *testing.T) {
	rules := newTestRules()
	rules.service[1] = map[int32][]*domain.ServiceHourWindow{
		0: {{ServiceID: 1, Weekday: 0, StartTime: "08:00", EndTime: "12:00"}},
	}
	engine := newTestEngine(rules, nil)

	// Dentro del horario general pero fuera del horario propio del servicio
	decision, err := engine.Resolve(testSchedule(3), "Consulta", monday, "14:00")
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
	assert.Equal(t, ReasonServiceNotOffered, decision.Code)

	decision, err = engine.Resolve(testSchedule(3), "Consulta", monday, "10:00")
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
}

func TestResolveServiceHoursOtherDayDoNotApply(t *testing.T) {
	rules := newTestRules()
	// Franja propia solo el martes; el lunes vale el horario general
	rules.service[1] = map[int32][]*domain.ServiceHourWindow{
		1: {{ServiceID: 1, Weekday: 1, StartTime: "08:00", EndTime: "10:00"}},
	}
	engine := newTestEngine(rules, nil)

	decision, err := engine.Resolve(testSchedule(3), "Consulta", monday, "14:00")
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
}

func TestResolveClosureBlocksSlot(t *testing.T) {
	rules := newTestRules()
	start, end := "10:00", "12:00"
	rules.closures = []*domain.ClosureRule{{
		StartDate: monday, EndDate: monday,
		StartTime: &start, EndTime: &end,
		Kind: domain.ClosureKindClosure,
	}}
	engine := newTestEngine(rules, nil)

	decision, err := engine.Resolve(testSchedule(3), "", monday, "11:00")
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
	assert.Equal(t, ReasonTimeBlocked, decision.Code)

	decision, err = engine.Resolve(testSchedule(3), "", monday, "13:00")
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
}

func TestResolveServiceScopedClosure(t *testing.T) {
	rules := newTestRules()
	rules.services["Limpieza"] = &domain.Service{ID: 2, Name: "Limpieza", Concurrency: 2}
	scopedID := int64(1)
	rules.closures = []*domain.ClosureRule{{
		StartDate: monday, EndDate: monday,
		AllDay:    true,
		ServiceID: &scopedID,
		Kind:      domain.ClosureKindClosure,
	}}
	engine := newTestEngine(rules, nil)

	decision, err := engine.Resolve(testSchedule(3), "Consulta", monday, "10:00")
	require.NoError(t, err)
	assert.Equal(t, ReasonTimeBlocked, decision.Code)

	// El cierre acotado a Consulta no afecta a Limpieza ni a las reservas
	// genéricas
	decision, err = engine.Resolve(testSchedule(3), "Limpieza", monday, "10:00")
	require.NoError(t, err)
	assert.True(t, decision.Admitted)

	decision, err = engine.Resolve(testSchedule(3), "", monday, "10:00")
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
}

func TestResolveExceptionOverridesHoursAndClosures(t *testing.T) {
	rules := newTestRules()
	rules.closures = []*domain.ClosureRule{
		{StartDate: sunday, EndDate: sunday, AllDay: true, Kind: domain.ClosureKindException},
	}
	engine := newTestEngine(rules, nil)

	// El domingo no hay horario de atención, pero la excepción lo habilita
	decision, err := engine.Resolve(testSchedule(3), "", sunday, "10:00")
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
}

func TestResolveExceptionNeverSkipsCapacity(t *testing.T) {
	rules := newTestRules()
	rules.closures = []*domain.ClosureRule{
		{StartDate: sunday, EndDate: sunday, AllDay: true, Kind: domain.ClosureKindException},
	}
	counter := &fakeCounter{
		total:     map[string]int32{sunday + "|10:00": 2},
		byService: map[string]int32{},
	}
	engine := newTestEngine(rules, counter)

	decision, err := engine.Resolve(testSchedule(2), "", sunday, "10:00")
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
	assert.Equal(t, ReasonNoSlotsAvailable, decision.Code)
}

func TestResolveGlobalCapacity(t *testing.T) {
	counter := &fakeCounter{
		total:     map[string]int32{monday + "|10:00": 2},
		byService: map[string]int32{},
	}
	engine := newTestEngine(newTestRules(), counter)

	decision, err := engine.Resolve(testSchedule(2), "", monday, "10:00")
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
	assert.Equal(t, ReasonNoSlotsAvailable, decision.Code)

	decision, err = engine.Resolve(testSchedule(3), "", monday, "10:00")
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
}

func TestResolveServiceConcurrency(t *testing.T) {
	counter := &fakeCounter{
		total:     map[string]int32{monday + "|10:00": 1},
		byService: map[string]int32{monday + "|10:00|Consulta": 1},
	}
	engine := newTestEngine(newTestRules(), counter)

	// Queda cupo global pero Consulta (concurrencia 1) ya está ocupada
	decision, err := engine.Resolve(testSchedule(5), "Consulta", monday, "10:00")
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
	assert.Equal(t, ReasonServiceLimitReached, decision.Code)

	// Una reserva genérica en la misma franja sí entra
	decision, err = engine.Resolve(testSchedule(5), "", monday, "10:00")
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
}

func TestResolveUnknownServiceSkipsConcurrency(t *testing.T) {
	counter := &fakeCounter{
		total:     map[string]int32{},
		byService: map[string]int32{},
	}
	engine := newTestEngine(newTestRules(), counter)

	decision, err := engine.Resolve(testSchedule(3), "Inexistente", monday, "10:00")
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
}

func TestResolveLayerOrder(t *testing.T) {
	// Día cerrado y además sin cupos: debe ganar la primera capa decisiva
	counter := &fakeCounter{
		total:     map[string]int32{sunday + "|10:00": 99},
		byService: map[string]int32{},
	}
	engine := newTestEngine(newTestRules(), counter)

	decision, err := engine.Resolve(testSchedule(1), "", sunday, "10:00")
	require.NoError(t, err)
	assert.Equal(t, ReasonScheduleClosed, decision.Code)
}

func TestResolveMalformedInputIsError(t *testing.T) {
	engine := newTestEngine(newTestRules(), nil)

	cases := []struct {
		date string
		time string
	}{
		{"24-08-2026", "10:00"},
		{monday, "10h"},
		{"", "10:00"},
		{monday, ""},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("caso_%d", i), func(t *testing.T) {
			_, err := engine.Resolve(testSchedule(3), "", tc.date, tc.time)
			assert.Error(t, err)
		})
	}
}
