package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/agendaflow/agenda-crm/backend/internal/config"
	"github.com/agendaflow/agenda-crm/backend/internal/repository"
	"github.com/agendaflow/agenda-crm/backend/internal/seed"
	"github.com/agendaflow/agenda-crm/backend/internal/utils"
	"github.com/agendaflow/agenda-crm/backend/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var scheduleID int64
	var date string

	flag.IntVar(&op, "op", 0, "operación (1: usuarios aleatorios, 2: agendas aleatorias, 3: servicios aleatorios, 4: citas aleatorias, 5: datos de demostración)")
	flag.IntVar(&n, "n", 5, "cantidad de registros a insertar")
	flag.Int64Var(&scheduleID, "schedule-id", 0, "agenda destino de las citas aleatorias")
	flag.StringVar(&date, "date", time.Now().AddDate(0, 0, 1).Format("2006-01-02"), "fecha de las citas aleatorias (AAAA-MM-DD)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("no se pudo cargar la configuración", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("no se pudo crear el pool de conexiones", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("no se pudo conectar a la base de datos", "error", err)
		return
	}

	if err := migrations.Up(dbpool); err != nil {
		logger.Error("no se pudieron aplicar las migraciones", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no se indicó ninguna operación")
	case 1:
		if n <= 0 {
			slog.Error("la cantidad de usuarios debe ser positiva")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("no se pudo generar el usuario", slog.String("error", err.Error()))
				continue
			}
			if err := repo.CreateUser(user); err != nil {
				slog.Error("no se pudo insertar el usuario", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("usuarios insertados", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("la cantidad de agendas debe ser positiva")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			schedule := utils.GenerateRandomSchedule()
			if err := repo.CreateSchedule(schedule); err != nil {
				slog.Error("no se pudo insertar la agenda", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("agendas insertadas", slog.Int("count", cnt))
	case 3:
		if n <= 0 {
			slog.Error("la cantidad de servicios debe ser positiva")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			service := utils.GenerateRandomService()
			if err := repo.CreateService(service); err != nil {
				slog.Error("no se pudo insertar el servicio", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("servicios insertados", slog.Int("count", cnt))
	case 4:
		if scheduleID <= 0 {
			slog.Error("se necesita una agenda destino (-schedule-id)")
			return
		}
		if _, err := repo.GetScheduleByID(scheduleID); err != nil {
			slog.Error("no se pudo cargar la agenda destino", slog.String("error", err.Error()))
			return
		}
		services, err := repo.GetServicesForSchedule(scheduleID)
		if err != nil {
			slog.Error("no se pudieron cargar los servicios de la agenda", slog.String("error", err.Error()))
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			serviceName := ""
			if len(services) > 0 {
				serviceName = services[i%len(services)].Service.Name
			}
			appointment := utils.GenerateRandomAppointment(scheduleID, serviceName, date)
			if err := repo.CreateAppointment(appointment); err != nil {
				slog.Error("no se pudo insertar la cita", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("citas insertadas", slog.Int("count", cnt), slog.String("date", date))
	case 5:
		seed.SeedDemoData(repo)
	default:
		slog.Error("la operación indicada no existe")
	}
}
