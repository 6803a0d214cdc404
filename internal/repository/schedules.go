package repository

import (
	"context"
	"time"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func (r *Repository) CreateSchedule(schedule *domain.Schedule) error {
	query := `
		INSERT INTO schedules (name, description, capacity_per_slot)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{schedule.Name, schedule.Description, schedule.CapacityPerSlot}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetScheduleByID(id int64) (*domain.Schedule, error) {
	query := `
		SELECT name, description, capacity_per_slot, created_at, version
		FROM schedules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	schedule := &domain.Schedule{
		ID: id,
	}

	dst := []any{&schedule.Name, &schedule.Description, &schedule.CapacityPerSlot, &schedule.CreatedAt, &schedule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *Repository) GetAllSchedules() ([]*domain.Schedule, error) {
	query := `
		SELECT id, name, description, capacity_per_slot, created_at, version
		FROM schedules
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule := &domain.Schedule{}
		dst := []any{&schedule.ID, &schedule.Name, &schedule.Description, &schedule.CapacityPerSlot, &schedule.CreatedAt, &schedule.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// GetSchedulesForUser trae solo las agendas asignadas al usuario.
func (r *Repository) GetSchedulesForUser(userID int64) ([]*domain.Schedule, error) {
	query := `
		SELECT s.id, s.name, s.description, s.capacity_per_slot, s.created_at, s.version
		FROM schedules s
		JOIN schedule_users su ON s.id = su.schedule_id
		WHERE su.user_id = $1
		ORDER BY s.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule := &domain.Schedule{}
		dst := []any{&schedule.ID, &schedule.Name, &schedule.Description, &schedule.CapacityPerSlot, &schedule.CreatedAt, &schedule.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *Repository) UpdateSchedule(schedule *domain.Schedule) error {
	query := `
		UPDATE schedules
		SET
			name = $1,
			description = $2,
			capacity_per_slot = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{schedule.Name, schedule.Description, schedule.CapacityPerSlot, schedule.ID, schedule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&schedule.CreatedAt, &schedule.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteSchedule(id int64) error {
	query := `
		DELETE FROM schedules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
