package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/agendaflow/agenda-crm/backend/internal/booking"
	"github.com/agendaflow/agenda-crm/backend/internal/broadcast"
	"github.com/agendaflow/agenda-crm/backend/internal/config"
	"github.com/agendaflow/agenda-crm/backend/internal/policy"
	"github.com/agendaflow/agenda-crm/backend/internal/repository"
)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	repository   *repository.Repository
	translator   ut.Translator
	mailChannel  *amqp.Channel
	redisClient  *redis.Client
	hub          *broadcast.Hub
	orchestrator *booking.Orchestrator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client, hub *broadcast.Hub, orch *booking.Orchestrator) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	es := es.New()
	uni := ut.New(es, es)
	trans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:     validate,
		config:       cfg,
		repository:   repo,
		translator:   trans,
		mailChannel:  mailCh,
		redisClient:  rdb,
		hub:          hub,
		orchestrator: orch,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// Autenticación
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// El websocket de solo lectura no pasa por la cookie: los espectadores
	// son pantallas compartidas en los locales
	h.Mux.Get("/ws", h.ServeWS)

	// El resto del API exige sesión iniciada
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.requireAction(policy.ActionManageUsers))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", h.GetAllServices)
			r.With(h.requireAction(policy.ActionManageCatalog)).Post("/", h.CreateService)
			r.Route("/{serviceID}", func(r chi.Router) {
				r.Use(h.service)
				r.Get("/", h.GetService)
				r.With(h.requireAction(policy.ActionManageCatalog)).Patch("/", h.UpdateService)
				r.With(h.requireAction(policy.ActionManageCatalog)).Delete("/", h.DeleteService)
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.GetMySchedules)
			r.With(h.requireAction(policy.ActionManageSchedules)).Post("/", h.CreateSchedule)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.schedule)
				r.With(h.requireAction(policy.ActionViewSchedule)).Get("/", h.GetSchedule)
				r.With(h.requireAction(policy.ActionManageSchedules)).Patch("/", h.UpdateSchedule)
				r.With(h.requireAction(policy.ActionManageSchedules)).Delete("/", h.DeleteSchedule)

				r.Route("/users", func(r chi.Router) {
					r.Use(h.requireAction(policy.ActionManageUsers))
					r.Post("/{userID}", h.AssignUserToSchedule)
					r.Delete("/{userID}", h.UnassignUserFromSchedule)
				})

				r.Route("/services", func(r chi.Router) {
					r.With(h.requireAction(policy.ActionViewSchedule)).Get("/", h.GetScheduleServices)
					r.With(h.requireAction(policy.ActionManageCatalog)).Post("/", h.AssignServiceToSchedule)
					r.With(h.requireAction(policy.ActionManageCatalog)).Delete("/{serviceID}", h.UnassignServiceFromSchedule)
				})

				r.Route("/hours", func(r chi.Router) {
					r.With(h.requireAction(policy.ActionViewSchedule)).Get("/", h.GetBusinessHours)
					r.With(h.requireAction(policy.ActionManageScheduleRules)).Post("/", h.CreateBusinessHour)
					r.With(h.requireAction(policy.ActionManageScheduleRules)).Delete("/{hourID}", h.DeleteBusinessHour)
					r.With(h.requireAction(policy.ActionManageScheduleRules)).Put("/weekday/{weekday}", h.ReplaceBusinessHoursByWeekday)
					r.With(h.requireAction(policy.ActionManageScheduleRules)).Delete("/weekday/{weekday}", h.DeleteBusinessHoursByWeekday)
				})

				r.Route("/service-hours", func(r chi.Router) {
					r.With(h.requireAction(policy.ActionViewSchedule)).Get("/", h.GetServiceHours)
					r.With(h.requireAction(policy.ActionManageScheduleRules)).Post("/", h.CreateServiceHour)
					r.With(h.requireAction(policy.ActionManageScheduleRules)).Delete("/{hourID}", h.DeleteServiceHour)
				})

				r.Route("/closures", func(r chi.Router) {
					r.With(h.requireAction(policy.ActionViewSchedule)).Get("/", h.GetClosureRules)
					r.With(h.requireAction(policy.ActionManageScheduleRules)).Post("/", h.CreateClosureRule)
					r.With(h.requireAction(policy.ActionManageScheduleRules)).Delete("/{closureID}", h.DeleteClosureRule)
				})

				r.Route("/alerts", func(r chi.Router) {
					r.With(h.requireAction(policy.ActionViewSchedule)).Get("/", h.GetActiveAlerts)
					r.With(h.requireAction(policy.ActionManageScheduleRules)).Post("/", h.CreateAlert)
					r.With(h.requireAction(policy.ActionManageScheduleRules)).Delete("/{alertID}", h.DeactivateAlert)
				})

				r.Route("/appointments", func(r chi.Router) {
					r.With(h.requireAction(policy.ActionViewSchedule)).Get("/", h.GetAppointmentsByDate)
					r.With(h.requireAction(policy.ActionViewSchedule)).Get("/pending-confirmations", h.GetPendingConfirmations)
					r.With(h.requireAction(policy.ActionBookAppointments)).With(h.myInfo).Post("/", h.CreateAppointment)
				})
			})
		})

		r.Route("/appointments/{appointmentID}", func(r chi.Router) {
			r.Use(h.appointment)
			r.Use(h.requireAction(policy.ActionBookAppointments))
			r.Patch("/", h.UpdateAppointment)
			r.Delete("/", h.DeleteAppointment)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/agent-sales", h.GetAgentSales)
		})
	})
}
