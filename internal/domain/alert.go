package domain

type Alert struct {
	ID         int64  `json:"id"`
	ScheduleID int64  `json:"scheduleId"`
	Message    string `json:"message"`
	Type       string `json:"type"` // warning, info
	Active     bool   `json:"active"`
}
