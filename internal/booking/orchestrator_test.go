package booking

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaflow/agenda-crm/backend/internal/availability"
	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

// 2026-08-24 es lunes.
const monday = "2026-08-24"

// stubRules abre la agenda de 08:00 a 18:00 todos los días.
type stubRules struct {
	services map[string]*domain.Service
}

func (s *stubRules) BusinessHourWindowsByWeekday(scheduleID int64, weekday int32) ([]*domain.BusinessHourWindow, error) {
	return []*domain.BusinessHourWindow{{Weekday: weekday, StartTime: "08:00", EndTime: "18:00"}}, nil
}

func (s *stubRules) ServiceHourWindowsByWeekday(scheduleID, serviceID int64, weekday int32) ([]*domain.ServiceHourWindow, error) {
	return nil, nil
}

func (s *stubRules) ClosureRulesForDate(scheduleID int64, date string) ([]*domain.ClosureRule, error) {
	return nil, nil
}

func (s *stubRules) ServiceByName(name string) (*domain.Service, error) {
	return s.services[name], nil
}

// memoryStore persiste en memoria y cuenta sobre lo persistido, para que
// las carreras de reserva se vean igual que contra la base real.
type memoryStore struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
}

func (m *memoryStore) CreateAppointment(appointment *domain.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	appointment.ID = m.nextID
	stored := *appointment
	m.appointments = append(m.appointments, &stored)
	return nil
}

func (m *memoryStore) UpdateAppointment(appointment *domain.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.appointments {
		if a.ID == appointment.ID {
			stored := *appointment
			m.appointments[i] = &stored
			return nil
		}
	}
	return nil
}

func (m *memoryStore) CountAtSlot(scheduleID int64, date, timeOfDay string) (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int32
	for _, a := range m.appointments {
		if a.ScheduleID == scheduleID && a.Date == date && a.Time == timeOfDay && a.Confirmation != domain.ConfirmationCancelled {
			count++
		}
	}
	return count, nil
}

func (m *memoryStore) CountAtSlotForService(scheduleID int64, date, timeOfDay, serviceName string) (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int32
	for _, a := range m.appointments {
		if a.ScheduleID == scheduleID && a.Date == date && a.Time == timeOfDay && a.ServiceName == serviceName && a.Confirmation != domain.ConfirmationCancelled {
			count++
		}
	}
	return count, nil
}

func (m *memoryStore) stored() []*domain.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Appointment, len(m.appointments))
	copy(out, m.appointments)
	return out
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (n *recordingNotifier) Broadcast(event domain.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) recorded() []domain.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Event, len(n.events))
	copy(out, n.events)
	return out
}

func newTestOrchestrator(capacity int32, services map[string]*domain.Service) (*Orchestrator, *memoryStore, *recordingNotifier, *domain.Schedule) {
	if services == nil {
		services = map[string]*domain.Service{}
	}
	store := &memoryStore{}
	notifier := &recordingNotifier{}
	engine := availability.NewEngine(&stubRules{services: services}, store)
	orch := NewOrchestrator(engine, store, notifier)
	schedule := &domain.Schedule{ID: 1, Name: "Sede Centro", CapacityPerSlot: capacity}
	return orch, store, notifier, schedule
}

func newAppointment(scheduleID int64, serviceName, timeOfDay string) *domain.Appointment {
	return &domain.Appointment{
		ScheduleID:   scheduleID,
		ServiceName:  serviceName,
		Date:         monday,
		Time:         timeOfDay,
		FullName:     "Ana García",
		Confirmation: domain.ConfirmationPending,
	}
}

func TestBookAdmitsAndPersists(t *testing.T) {
	orch, store, notifier, schedule := newTestOrchestrator(3, nil)

	appointment := newAppointment(schedule.ID, "", "10:00")
	decision, err := orch.Book(schedule, appointment)
	require.NoError(t, err)
	assert.True(t, decision.Admitted)

	stored := store.stored()
	require.Len(t, stored, 1)
	assert.Equal(t, monday, stored[0].Date)

	events := notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventAppointmentChanged, events[0].Type)
	require.NotNil(t, events[0].Scope)
	assert.Equal(t, schedule.ID, *events[0].Scope)
}

func TestBookRejectionLeavesNoTrace(t *testing.T) {
	orch, store, notifier, schedule := newTestOrchestrator(3, nil)

	appointment := newAppointment(schedule.ID, "", "20:00")
	decision, err := orch.Book(schedule, appointment)
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
	assert.Equal(t, availability.ReasonOutsideBusinessHours, decision.Code)

	assert.Empty(t, store.stored())
	assert.Empty(t, notifier.recorded())
}

func TestConcurrentBookingNeverExceedsCapacity(t *testing.T) {
	orch, store, _, schedule := newTestOrchestrator(2, nil)

	const attempts = 10
	var wg sync.WaitGroup
	results := make([]bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			decision, err := orch.Book(schedule, newAppointment(schedule.ID, "", "10:00"))
			require.NoError(t, err)
			results[i] = decision.Admitted
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, ok := range results {
		if ok {
			admitted++
		}
	}
	assert.Equal(t, 2, admitted)
	assert.Len(t, store.stored(), 2)
}

func TestConcurrentBookingRespectsServiceLimit(t *testing.T) {
	// Cupo global 2 pero Consulta admite una sola cita simultánea: de tres
	// peticiones concurrentes por Consulta debe entrar exactamente una
	services := map[string]*domain.Service{
		"Consulta": {ID: 1, Name: "Consulta", Concurrency: 1},
	}
	orch, store, _, schedule := newTestOrchestrator(2, services)

	const attempts = 3
	var wg sync.WaitGroup
	results := make([]bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			decision, err := orch.Book(schedule, newAppointment(schedule.ID, "Consulta", "10:00"))
			require.NoError(t, err)
			results[i] = decision.Admitted
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, ok := range results {
		if ok {
			admitted++
		}
	}
	assert.Equal(t, 1, admitted)
	assert.Len(t, store.stored(), 1)
}

func TestDifferentSlotsDoNotContend(t *testing.T) {
	orch, store, _, schedule := newTestOrchestrator(1, nil)

	times := []string{"09:00", "10:00", "11:00", "12:00"}
	var wg sync.WaitGroup
	for _, at := range times {
		wg.Add(1)
		go func(at string) {
			defer wg.Done()
			decision, err := orch.Book(schedule, newAppointment(schedule.ID, "", at))
			require.NoError(t, err)
			assert.True(t, decision.Admitted)
		}(at)
	}
	wg.Wait()

	assert.Len(t, store.stored(), len(times))
}

func TestCancelledAppointmentsFreeTheirSlot(t *testing.T) {
	orch, store, _, schedule := newTestOrchestrator(1, nil)

	first := newAppointment(schedule.ID, "", "10:00")
	decision, err := orch.Book(schedule, first)
	require.NoError(t, err)
	require.True(t, decision.Admitted)

	// Con el cupo lleno la segunda cita rebota
	decision, err = orch.Book(schedule, newAppointment(schedule.ID, "", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, availability.ReasonNoSlotsAvailable, decision.Code)

	// Cancelar la primera libera el cupo
	first.Confirmation = domain.ConfirmationCancelled
	require.NoError(t, store.UpdateAppointment(first))

	decision, err = orch.Book(schedule, newAppointment(schedule.ID, "", "10:00"))
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
}

func TestRescheduleRevalidatesDestination(t *testing.T) {
	orch, store, _, schedule := newTestOrchestrator(1, nil)

	moving := newAppointment(schedule.ID, "", "09:00")
	decision, err := orch.Book(schedule, moving)
	require.NoError(t, err)
	require.True(t, decision.Admitted)

	blocker := newAppointment(schedule.ID, "", "10:00")
	decision, err = orch.Book(schedule, blocker)
	require.NoError(t, err)
	require.True(t, decision.Admitted)

	// La franja destino está llena: la cita no se mueve
	decision, err = orch.Reschedule(schedule, moving, monday, "10:00", "")
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
	assert.Equal(t, availability.ReasonNoSlotsAvailable, decision.Code)
	assert.Equal(t, "09:00", moving.Time)

	// A una franja libre sí
	decision, err = orch.Reschedule(schedule, moving, monday, "11:00", "")
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
	assert.Equal(t, "11:00", moving.Time)

	for _, a := range store.stored() {
		if a.ID == moving.ID {
			assert.Equal(t, "11:00", a.Time)
		}
	}
}
