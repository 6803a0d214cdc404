package handler

import (
	"net/http"
	"time"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

// GetAgentSales devuelve las ventas del mes en curso del agente que
// consulta: cada cita no cancelada registrada por él cuenta como una
// venta al valor unitario configurado.
func (h *Handler) GetAgentSales(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	monthPrefix := time.Now().Format("2006-01")

	count, err := h.repository.CountAgentSalesForMonth(myInfo.Username, monthPrefix)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	data := struct {
		Month string `json:"month"`
		Count int32  `json:"count"`
		Total int64  `json:"total"`
	}{
		Month: monthPrefix,
		Count: count,
		Total: int64(count) * h.config.Stats.SaleUnitAmount,
	}

	h.successResponse(w, r, "Ventas del mes obtenidas", data)
}
