package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func (r *Repository) CreateClosureRule(rule *domain.ClosureRule) error {
	query := `
		INSERT INTO closure_rules (schedule_id, service_id, start_date, end_date, start_time, end_time, all_day, kind, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{rule.ScheduleID, rule.ServiceID, rule.StartDate, rule.EndDate, rule.StartTime, rule.EndTime, rule.AllDay, rule.Kind, rule.Reason}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rule.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetClosureRules(scheduleID int64) ([]*domain.ClosureRule, error) {
	query := `
		SELECT id, service_id, start_date, end_date, start_time, end_time, all_day, kind, reason
		FROM closure_rules
		WHERE schedule_id = $1
		ORDER BY start_date, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClosureRules(rows, scheduleID)
}

// ClosureRulesForDate trae solo las reglas cuyo rango de fechas cubre el día
// consultado; el filtrado por hora y servicio lo hace el motor.
func (r *Repository) ClosureRulesForDate(scheduleID int64, date string) ([]*domain.ClosureRule, error) {
	query := `
		SELECT id, service_id, start_date, end_date, start_time, end_time, all_day, kind, reason
		FROM closure_rules
		WHERE schedule_id = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClosureRules(rows, scheduleID)
}

func (r *Repository) DeleteClosureRule(id int64) error {
	query := `
		DELETE FROM closure_rules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

func scanClosureRules(rows *sql.Rows, scheduleID int64) ([]*domain.ClosureRule, error) {
	rules := make([]*domain.ClosureRule, 0)
	for rows.Next() {
		rule := &domain.ClosureRule{
			ScheduleID: scheduleID,
		}
		dst := []any{&rule.ID, &rule.ServiceID, &rule.StartDate, &rule.EndDate, &rule.StartTime, &rule.EndTime, &rule.AllDay, &rule.Kind, &rule.Reason}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}
