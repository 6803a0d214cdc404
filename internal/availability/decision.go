package availability

type ReasonCode string

// Códigos estables de rechazo; el mensaje acompaña al código en la
// respuesta al cliente pero el código es el contrato.
const (
	ReasonScheduleClosed       ReasonCode = "schedule_closed"
	ReasonOutsideBusinessHours ReasonCode = "outside_business_hours"
	ReasonServiceNotOffered    ReasonCode = "service_not_offered_at_time"
	ReasonTimeBlocked          ReasonCode = "time_blocked"
	ReasonNoSlotsAvailable     ReasonCode = "no_slots_available"
	ReasonServiceLimitReached  ReasonCode = "service_limit_reached"
)

var reasonMessages = map[ReasonCode]string{
	ReasonScheduleClosed:       "No hay atención este día",
	ReasonOutsideBusinessHours: "Fuera del horario de atención",
	ReasonServiceNotOffered:    "El servicio no se atiende en este horario",
	ReasonTimeBlocked:          "Horario bloqueado",
	ReasonNoSlotsAvailable:     "No hay cupos disponibles",
	ReasonServiceLimitReached:  "Cupos agotados para este servicio",
}

// Decision es el resultado ordinario del motor: admitida, o rechazada con
// un motivo. Nunca es una condición excepcional.
type Decision struct {
	Admitted bool       `json:"admitted"`
	Code     ReasonCode `json:"code,omitempty"`
	Message  string     `json:"message,omitempty"`
}

func admit() Decision {
	return Decision{Admitted: true}
}

func reject(code ReasonCode) Decision {
	return Decision{Admitted: false, Code: code, Message: reasonMessages[code]}
}
