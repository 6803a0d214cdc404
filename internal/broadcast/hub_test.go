package broadcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func newTestViewer(buffer int) *Viewer {
	return &Viewer{Send: make(chan domain.Event, buffer)}
}

func receiveEvent(t *testing.T, viewer *Viewer) domain.Event {
	t.Helper()
	select {
	case event, ok := <-viewer.Send:
		require.True(t, ok, "el canal del espectador se cerró antes de tiempo")
		return event
	case <-time.After(time.Second):
		t.Fatal("no llegó ningún evento")
		return domain.Event{}
	}
}

func expectClosed(t *testing.T, viewer *Viewer) {
	t.Helper()
	select {
	case _, ok := <-viewer.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("el canal del espectador sigue abierto")
	}
}

func TestBroadcastReachesAllViewers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	viewers := []*Viewer{newTestViewer(4), newTestViewer(4), newTestViewer(4)}
	for _, v := range viewers {
		hub.Register(v)
	}

	hub.Broadcast(domain.ScopedEvent(domain.EventAppointmentChanged, 7))

	for _, v := range viewers {
		event := receiveEvent(t, v)
		assert.Equal(t, domain.EventAppointmentChanged, event.Type)
		require.NotNil(t, event.Scope)
		assert.Equal(t, int64(7), *event.Scope)
	}
}

func TestViewerReceivesEventsInOrder(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	viewer := newTestViewer(16)
	hub.Register(viewer)

	scopes := []int64{1, 2, 3, 4, 5}
	for _, scope := range scopes {
		hub.Broadcast(domain.ScopedEvent(domain.EventHoursChanged, scope))
	}

	for _, want := range scopes {
		event := receiveEvent(t, viewer)
		require.NotNil(t, event.Scope)
		assert.Equal(t, want, *event.Scope)
	}
}

func TestSlowViewerIsDroppedWithoutBlockingOthers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	slow := newTestViewer(1)
	healthy := newTestViewer(16)
	hub.Register(slow)
	hub.Register(healthy)

	// Tres eventos sin drenar: el segundo encuentra la cola llena y el
	// espectador lento queda fuera
	for i := 0; i < 3; i++ {
		hub.Broadcast(domain.GlobalEvent(domain.EventServiceCatalogChanged))
	}

	for i := 0; i < 3; i++ {
		event := receiveEvent(t, healthy)
		assert.Equal(t, domain.EventServiceCatalogChanged, event.Type)
		assert.Nil(t, event.Scope)
	}

	receiveEvent(t, slow)
	expectClosed(t, slow)
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	viewer := newTestViewer(4)
	hub.Register(viewer)
	hub.Unregister(viewer)
	hub.Unregister(viewer)

	expectClosed(t, viewer)

	// El hub sigue operativo para el resto
	other := newTestViewer(4)
	hub.Register(other)
	hub.Broadcast(domain.GlobalEvent(domain.EventUserRosterChanged))
	event := receiveEvent(t, other)
	assert.Equal(t, domain.EventUserRosterChanged, event.Type)
}

func TestStopClosesAllViewers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	viewer := newTestViewer(4)
	hub.Register(viewer)

	hub.Stop()
	expectClosed(t, viewer)

	// Tras el cierre nada bloquea ni entra en pánico
	hub.Register(newTestViewer(1))
	hub.Unregister(viewer)
	hub.Broadcast(domain.GlobalEvent(domain.EventScheduleChanged))
}
