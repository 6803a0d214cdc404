package repository

import (
	"context"
	"time"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func (r *Repository) CreateAppointment(appointment *domain.Appointment) error {
	query := `
		INSERT INTO appointments (schedule_id, service_name, date, time, full_name, document_type, document_number, phone, email, notes, invoice, seller, confirmation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		appointment.ScheduleID, appointment.ServiceName, appointment.Date, appointment.Time,
		appointment.FullName, appointment.DocumentType, appointment.DocumentNumber, appointment.Phone,
		appointment.Email, appointment.Notes, appointment.Invoice, appointment.Seller, appointment.Confirmation,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAppointmentByID(id int64) (*domain.Appointment, error) {
	query := `
		SELECT schedule_id, service_name, date, time, full_name, document_type, document_number, phone, email, notes, invoice, seller, confirmation, created_at, version
		FROM appointments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	appointment := &domain.Appointment{
		ID: id,
	}

	dst := []any{
		&appointment.ScheduleID, &appointment.ServiceName, &appointment.Date, &appointment.Time,
		&appointment.FullName, &appointment.DocumentType, &appointment.DocumentNumber, &appointment.Phone,
		&appointment.Email, &appointment.Notes, &appointment.Invoice, &appointment.Seller, &appointment.Confirmation,
		&appointment.CreatedAt, &appointment.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return appointment, nil
}

func (r *Repository) GetAppointmentsByScheduleAndDate(scheduleID int64, date string) ([]*domain.Appointment, error) {
	query := `
		SELECT id, service_name, date, time, full_name, document_type, document_number, phone, email, notes, invoice, seller, confirmation, created_at, version
		FROM appointments
		WHERE schedule_id = $1 AND date = $2
		ORDER BY time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment := &domain.Appointment{
			ScheduleID: scheduleID,
		}
		dst := []any{
			&appointment.ID, &appointment.ServiceName, &appointment.Date, &appointment.Time,
			&appointment.FullName, &appointment.DocumentType, &appointment.DocumentNumber, &appointment.Phone,
			&appointment.Email, &appointment.Notes, &appointment.Invoice, &appointment.Seller, &appointment.Confirmation,
			&appointment.CreatedAt, &appointment.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *Repository) UpdateAppointment(appointment *domain.Appointment) error {
	query := `
		UPDATE appointments
		SET
			service_name = $1,
			date = $2,
			time = $3,
			full_name = $4,
			document_type = $5,
			document_number = $6,
			phone = $7,
			email = $8,
			notes = $9,
			invoice = $10,
			seller = $11,
			confirmation = $12,
			version = version + 1
		WHERE id = $13 AND version = $14
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		appointment.ServiceName, appointment.Date, appointment.Time,
		appointment.FullName, appointment.DocumentType, appointment.DocumentNumber, appointment.Phone,
		appointment.Email, appointment.Notes, appointment.Invoice, appointment.Seller, appointment.Confirmation,
		appointment.ID, appointment.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&appointment.CreatedAt, &appointment.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAppointment(id int64) error {
	query := `
		DELETE FROM appointments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

// CountAtSlot cuenta las citas vivas de una franja exacta. Las canceladas
// no ocupan cupo.
func (r *Repository) CountAtSlot(scheduleID int64, date, timeOfDay string) (int32, error) {
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE schedule_id = $1 AND date = $2 AND time = $3 AND confirmation <> $4
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int32
	if err := r.dbpool.QueryRowContext(ctx, query, scheduleID, date, timeOfDay, domain.ConfirmationCancelled).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) CountAtSlotForService(scheduleID int64, date, timeOfDay, serviceName string) (int32, error) {
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE schedule_id = $1 AND date = $2 AND time = $3 AND service_name = $4 AND confirmation <> $5
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int32
	if err := r.dbpool.QueryRowContext(ctx, query, scheduleID, date, timeOfDay, serviceName, domain.ConfirmationCancelled).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// GetPendingConfirmations trae las citas de hoy y mañana que siguen sin
// confirmar, para el tablero de llamadas.
func (r *Repository) GetPendingConfirmations(scheduleID int64, today, tomorrow string) ([]*domain.Appointment, error) {
	query := `
		SELECT id, service_name, date, time, full_name, document_type, document_number, phone, email, notes, invoice, seller, confirmation, created_at, version
		FROM appointments
		WHERE schedule_id = $1 AND date IN ($2, $3) AND confirmation = $4
		ORDER BY date, time, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, scheduleID, today, tomorrow, domain.ConfirmationPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment := &domain.Appointment{
			ScheduleID: scheduleID,
		}
		dst := []any{
			&appointment.ID, &appointment.ServiceName, &appointment.Date, &appointment.Time,
			&appointment.FullName, &appointment.DocumentType, &appointment.DocumentNumber, &appointment.Phone,
			&appointment.Email, &appointment.Notes, &appointment.Invoice, &appointment.Seller, &appointment.Confirmation,
			&appointment.CreatedAt, &appointment.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

// CountAgentSalesForMonth cuenta las citas no canceladas registradas por un
// vendedor en un mes dado; monthPrefix viene como "YYYY-MM".
func (r *Repository) CountAgentSalesForMonth(seller, monthPrefix string) (int32, error) {
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE seller = $1 AND date LIKE $2 || '-%' AND confirmation <> $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int32
	if err := r.dbpool.QueryRowContext(ctx, query, seller, monthPrefix, domain.ConfirmationCancelled).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
