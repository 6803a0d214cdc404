package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/agendaflow/agenda-crm/backend/internal/broadcast"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// El frontend y el API corren en orígenes distintos
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS convierte la petición en una conexión de espectador: el servidor
// solo empuja eventos, lo que llegue del cliente se descarta.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió al cliente con el error
		h.logInternalServerError(r, err)
		return
	}

	viewer := broadcast.NewViewer(h.hub, conn, h.config.Broadcast.BufferSize, time.Duration(h.config.Broadcast.SendTimeout)*time.Second)
	h.hub.Register(viewer)

	go viewer.WritePump()
	go viewer.ReadPump()
}
