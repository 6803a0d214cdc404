package broadcast

import (
	"log/slog"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

// Hub mantiene el conjunto vivo de espectadores y reparte los eventos.
// Una sola goroutine (Run) es dueña del mapa de miembros: registrar,
// retirar y difundir llegan por canales, así que nadie itera un conjunto
// a medio modificar. El reparto es al mejor esfuerzo: un espectador con
// la cola llena se descarta en vez de frenar a los demás o al que difunde.
type Hub struct {
	register   chan *Viewer
	unregister chan *Viewer
	broadcast  chan domain.Event
	viewers    map[*Viewer]bool
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Viewer),
		unregister: make(chan *Viewer),
		broadcast:  make(chan domain.Event, 64),
		viewers:    make(map[*Viewer]bool),
		done:       make(chan struct{}),
	}
}

// Run atiende los canales hasta Stop. Debe correr en su propia goroutine.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for viewer := range h.viewers {
				h.drop(viewer)
			}
			return
		case viewer := <-h.register:
			// idempotente por identidad de conexión
			h.viewers[viewer] = true
		case viewer := <-h.unregister:
			if h.viewers[viewer] {
				h.drop(viewer)
			}
		case event := <-h.broadcast:
			for viewer := range h.viewers {
				select {
				case viewer.Send <- event:
				default:
					// espectador lento o muerto: fuera, sin reintentos
					slog.Info("espectador descartado por cola llena")
					h.drop(viewer)
				}
			}
		}
	}
}

func (h *Hub) drop(viewer *Viewer) {
	delete(h.viewers, viewer)
	close(viewer.Send)
}

func (h *Hub) Stop() {
	close(h.done)
}

// Register añade el espectador al conjunto vivo.
func (h *Hub) Register(viewer *Viewer) {
	select {
	case h.register <- viewer:
	case <-h.done:
	}
}

// Unregister lo retira; es seguro llamarlo varias veces o después de que
// la conexión ya cayó.
func (h *Hub) Unregister(viewer *Viewer) {
	select {
	case h.unregister <- viewer:
	case <-h.done:
	}
}

// Broadcast entrega el evento a cada espectador registrado de forma
// independiente. Nunca devuelve error al que difunde: los fallos de
// entrega son locales a cada conexión. El canal del hub y el canal de
// cada espectador son FIFO, así que cada conexión ve los eventos en el
// orden en que se difundieron.
func (h *Hub) Broadcast(event domain.Event) {
	select {
	case h.broadcast <- event:
	case <-h.done:
	}
}
