package handler

type ContextKey string

var (
	RoleCtxKey     ContextKey = "role"
	SubCtxKey      ContextKey = "sub"
	MyInfoCtx      ContextKey = "myInfo"
	UserInfoCtx    ContextKey = "userInfo"
	ScheduleCtx    ContextKey = "schedule"
	ServiceCtx     ContextKey = "service"
	AppointmentCtx ContextKey = "appointment"
)
