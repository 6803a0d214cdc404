package repository

import (
	"context"
	"time"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func (r *Repository) CreateAlert(alert *domain.Alert) error {
	query := `
		INSERT INTO alerts (schedule_id, message, type, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{alert.ScheduleID, alert.Message, alert.Type, alert.Active}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&alert.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetActiveAlerts(scheduleID int64) ([]*domain.Alert, error) {
	query := `
		SELECT id, message, type, active
		FROM alerts
		WHERE schedule_id = $1 AND active
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := make([]*domain.Alert, 0)
	for rows.Next() {
		alert := &domain.Alert{
			ScheduleID: scheduleID,
		}
		if err := rows.Scan(&alert.ID, &alert.Message, &alert.Type, &alert.Active); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}

// DeactivateAlert apaga la alerta sin borrarla, para conservar el historial.
func (r *Repository) DeactivateAlert(id int64) error {
	query := `
		UPDATE alerts SET active = FALSE WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
