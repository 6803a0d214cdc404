package repository

import (
	"context"
	"time"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func (r *Repository) CreateBusinessHourWindow(window *domain.BusinessHourWindow) error {
	query := `
		INSERT INTO business_hour_windows (schedule_id, weekday, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{window.ScheduleID, window.Weekday, window.StartTime, window.EndTime}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&window.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetBusinessHourWindows(scheduleID int64) ([]*domain.BusinessHourWindow, error) {
	query := `
		SELECT id, weekday, start_time, end_time
		FROM business_hour_windows
		WHERE schedule_id = $1
		ORDER BY weekday, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]*domain.BusinessHourWindow, 0)
	for rows.Next() {
		window := &domain.BusinessHourWindow{
			ScheduleID: scheduleID,
		}
		if err := rows.Scan(&window.ID, &window.Weekday, &window.StartTime, &window.EndTime); err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *Repository) BusinessHourWindowsByWeekday(scheduleID int64, weekday int32) ([]*domain.BusinessHourWindow, error) {
	query := `
		SELECT id, start_time, end_time
		FROM business_hour_windows
		WHERE schedule_id = $1 AND weekday = $2
		ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID, weekday)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]*domain.BusinessHourWindow, 0)
	for rows.Next() {
		window := &domain.BusinessHourWindow{
			ScheduleID: scheduleID,
			Weekday:    weekday,
		}
		if err := rows.Scan(&window.ID, &window.StartTime, &window.EndTime); err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}

// DeleteBusinessHourWindowsByWeekday limpia las franjas de un día completo.
// El frontend reemplaza el horario de un día borrando y volviendo a crear.
func (r *Repository) DeleteBusinessHourWindowsByWeekday(scheduleID int64, weekday int32) error {
	query := `
		DELETE FROM business_hour_windows WHERE schedule_id = $1 AND weekday = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, scheduleID, weekday)
	return err
}

// ReplaceBusinessHourWindowsForWeekday sustituye en una sola transacción
// las franjas de un día de la semana por el conjunto recibido, para que
// nadie vea el día vacío entre el borrado y las nuevas franjas.
func (r *Repository) ReplaceBusinessHourWindowsForWeekday(scheduleID int64, weekday int32, windows []*domain.BusinessHourWindow) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM business_hour_windows WHERE schedule_id = $1 AND weekday = $2`
	if _, err := tx.ExecContext(ctx, query, scheduleID, weekday); err != nil {
		return err
	}

	query = `
		INSERT INTO business_hour_windows (schedule_id, weekday, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for _, window := range windows {
		window.ScheduleID = scheduleID
		window.Weekday = weekday
		if err := tx.QueryRowContext(ctx, query, scheduleID, weekday, window.StartTime, window.EndTime).Scan(&window.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteBusinessHourWindow(id int64) error {
	query := `
		DELETE FROM business_hour_windows WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

func (r *Repository) CreateServiceHourWindow(window *domain.ServiceHourWindow) error {
	query := `
		INSERT INTO service_hour_windows (schedule_id, service_id, weekday, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{window.ScheduleID, window.ServiceID, window.Weekday, window.StartTime, window.EndTime}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&window.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetServiceHourWindows(scheduleID int64) ([]*domain.ServiceHourWindow, error) {
	query := `
		SELECT id, service_id, weekday, start_time, end_time
		FROM service_hour_windows
		WHERE schedule_id = $1
		ORDER BY service_id, weekday, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]*domain.ServiceHourWindow, 0)
	for rows.Next() {
		window := &domain.ServiceHourWindow{
			ScheduleID: scheduleID,
		}
		if err := rows.Scan(&window.ID, &window.ServiceID, &window.Weekday, &window.StartTime, &window.EndTime); err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *Repository) ServiceHourWindowsByWeekday(scheduleID, serviceID int64, weekday int32) ([]*domain.ServiceHourWindow, error) {
	query := `
		SELECT id, start_time, end_time
		FROM service_hour_windows
		WHERE schedule_id = $1 AND service_id = $2 AND weekday = $3
		ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID, serviceID, weekday)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]*domain.ServiceHourWindow, 0)
	for rows.Next() {
		window := &domain.ServiceHourWindow{
			ScheduleID: scheduleID,
			ServiceID:  serviceID,
			Weekday:    weekday,
		}
		if err := rows.Scan(&window.ID, &window.StartTime, &window.EndTime); err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *Repository) DeleteServiceHourWindow(id int64) error {
	query := `
		DELETE FROM service_hour_windows WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
