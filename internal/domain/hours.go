package domain

// Los días de la semana van de 0 (lunes) a 6 (domingo).

// BusinessHourWindow define una franja semanal en la que la agenda atiende.
// Una agenda sin franjas para un día de la semana está cerrada ese día,
// salvo que una excepción lo habilite.
type BusinessHourWindow struct {
	ID         int64  `json:"id"`
	ScheduleID int64  `json:"scheduleId"`
	Weekday    int32  `json:"weekday"`
	StartTime  string `json:"startTime"` // "08:00"
	EndTime    string `json:"endTime"`   // "18:00"
}

// ServiceHourWindow restringe un servicio a franjas propias dentro del
// horario general: si existe al menos una franja para (agenda, servicio,
// día), el servicio solo se atiende dentro de alguna de ellas.
type ServiceHourWindow struct {
	ID         int64  `json:"id"`
	ScheduleID int64  `json:"scheduleId"`
	ServiceID  int64  `json:"serviceId"`
	Weekday    int32  `json:"weekday"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}
