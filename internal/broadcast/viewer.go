package broadcast

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

// Viewer es un miembro efímero del conjunto vivo: existe mientras dura su
// conexión websocket. Send lo drena una única goroutine de escritura, por
// lo que el orden de los eventos de un mismo espectador se conserva.
type Viewer struct {
	Send chan domain.Event

	hub         *Hub
	conn        *websocket.Conn
	sendTimeout time.Duration
}

func NewViewer(hub *Hub, conn *websocket.Conn, bufferSize int, sendTimeout time.Duration) *Viewer {
	return &Viewer{
		Send:        make(chan domain.Event, bufferSize),
		hub:         hub,
		conn:        conn,
		sendTimeout: sendTimeout,
	}
}

// WritePump escribe los eventos encolados en la conexión. Un envío que
// falla o se pasa del plazo cierra la conexión; nunca se reintenta el
// mismo evento.
func (v *Viewer) WritePump() {
	defer func() {
		v.hub.Unregister(v)
		v.conn.Close()
	}()

	for event := range v.Send {
		_ = v.conn.SetWriteDeadline(time.Now().Add(v.sendTimeout))
		if err := v.conn.WriteJSON(event); err != nil {
			return
		}
	}
}

// ReadPump mantiene viva la conexión: el servidor solo emite, así que lo
// que llegue del cliente se lee y se descarta hasta que la conexión caiga.
func (v *Viewer) ReadPump() {
	defer func() {
		v.hub.Unregister(v)
		v.conn.Close()
	}()

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			return
		}
	}
}
