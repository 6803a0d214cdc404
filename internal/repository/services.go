package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func (r *Repository) CreateService(service *domain.Service) error {
	query := `
		INSERT INTO services (name, duration_minutes, base_price, concurrency, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{service.Name, service.DurationMinutes, service.BasePrice, service.Concurrency, service.Color}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&service.ID, &service.CreatedAt, &service.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetServiceByID(id int64) (*domain.Service, error) {
	query := `
		SELECT name, duration_minutes, base_price, concurrency, color, created_at, version
		FROM services WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	service := &domain.Service{
		ID: id,
	}

	dst := []any{&service.Name, &service.DurationMinutes, &service.BasePrice, &service.Concurrency, &service.Color, &service.CreatedAt, &service.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return service, nil
}

// ServiceByName resuelve un servicio del catálogo por nombre. Un servicio
// desconocido no es un error: devuelve (nil, nil) y el motor omite la capa
// de límite por servicio.
func (r *Repository) ServiceByName(name string) (*domain.Service, error) {
	query := `
		SELECT id, duration_minutes, base_price, concurrency, color, created_at, version
		FROM services WHERE name = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	service := &domain.Service{
		Name: name,
	}

	dst := []any{&service.ID, &service.DurationMinutes, &service.BasePrice, &service.Concurrency, &service.Color, &service.CreatedAt, &service.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, name).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return service, nil
}

func (r *Repository) GetAllServices() ([]*domain.Service, error) {
	query := `
		SELECT id, name, duration_minutes, base_price, concurrency, color, created_at, version
		FROM services
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service := &domain.Service{}
		dst := []any{&service.ID, &service.Name, &service.DurationMinutes, &service.BasePrice, &service.Concurrency, &service.Color, &service.CreatedAt, &service.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *Repository) UpdateService(service *domain.Service) error {
	query := `
		UPDATE services
		SET
			name = $1,
			duration_minutes = $2,
			base_price = $3,
			concurrency = $4,
			color = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{service.Name, service.DurationMinutes, service.BasePrice, service.Concurrency, service.Color, service.ID, service.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&service.CreatedAt, &service.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteService(id int64) error {
	query := `
		DELETE FROM services WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// AssignServiceToSchedule vincula un servicio del catálogo a una agenda con
// su precio final. Volver a asignarlo actualiza el precio y lo reactiva.
func (r *Repository) AssignServiceToSchedule(assignment *domain.ScheduleService) error {
	query := `
		INSERT INTO schedule_services (schedule_id, service_id, discount_percent, final_price, active)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (schedule_id, service_id) DO UPDATE
		SET discount_percent = EXCLUDED.discount_percent, final_price = EXCLUDED.final_price, active = TRUE
		RETURNING id, active
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{assignment.ScheduleID, assignment.ServiceID, assignment.DiscountPercent, assignment.FinalPrice}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&assignment.ID, &assignment.Active); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetServicesForSchedule(scheduleID int64) ([]*domain.ScheduleService, error) {
	query := `
		SELECT ss.id, ss.schedule_id, ss.service_id, ss.discount_percent, ss.final_price, ss.active,
			s.name, s.duration_minutes, s.base_price, s.concurrency, s.color, s.created_at, s.version
		FROM schedule_services ss
		JOIN services s ON ss.service_id = s.id
		WHERE ss.schedule_id = $1
		ORDER BY ss.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.ScheduleService, 0)
	for rows.Next() {
		assignment := &domain.ScheduleService{
			Service: &domain.Service{},
		}
		dst := []any{
			&assignment.ID, &assignment.ScheduleID, &assignment.ServiceID, &assignment.DiscountPercent, &assignment.FinalPrice, &assignment.Active,
			&assignment.Service.Name, &assignment.Service.DurationMinutes, &assignment.Service.BasePrice, &assignment.Service.Concurrency, &assignment.Service.Color, &assignment.Service.CreatedAt, &assignment.Service.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignment.Service.ID = assignment.ServiceID
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *Repository) UnassignServiceFromSchedule(scheduleID, serviceID int64) error {
	query := `
		UPDATE schedule_services SET active = FALSE
		WHERE schedule_id = $1 AND service_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, scheduleID, serviceID)
	return err
}
