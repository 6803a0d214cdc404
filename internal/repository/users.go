package repository

import (
	"context"
	"time"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, is_active, created_at, version
		FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Username, &user.PasswordHash, &user.FullName, &user.Email, &user.Role, &user.IsActive, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByUsername(username string) (*domain.User, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, is_active, created_at, version
		FROM users WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		Username: username,
	}

	dst := []any{&user.ID, &user.PasswordHash, &user.FullName, &user.Email, &user.Role, &user.IsActive, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) CreateUser(user *domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (username, password_hash, full_name, email, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, version
	`

	args := []any{user.Username, user.PasswordHash, user.FullName, user.Email, user.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			password_hash = $1,
			email = $2,
			role = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING username, full_name, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{user.PasswordHash, user.Email, user.Role, user.IsActive, user.ID, user.Version}
	dst := []any{&user.Username, &user.FullName, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

// GetAllUsers trae los usuarios con sus agendas asignadas resueltas en la
// misma consulta.
func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.full_name, u.email, u.role, u.is_active, u.created_at, u.version, su.schedule_id
		FROM users u
		LEFT JOIN schedule_users su ON u.id = su.user_id
		ORDER BY u.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usersMap := make(map[int64]*domain.User)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			user       domain.User
			scheduleID *int64
		}

		dst := []any{&row.user.ID, &row.user.Username, &row.user.PasswordHash, &row.user.FullName, &row.user.Email, &row.user.Role, &row.user.IsActive, &row.user.CreatedAt, &row.user.Version, &row.scheduleID}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		user, exists := usersMap[row.user.ID]
		if !exists {
			user = &row.user
			user.ScheduleIDs = make([]int64, 0)
			usersMap[user.ID] = user
			order = append(order, user.ID)
		}

		if row.scheduleID != nil {
			user.ScheduleIDs = append(user.ScheduleIDs, *row.scheduleID)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(order))
	for _, id := range order {
		users = append(users, usersMap[id])
	}

	return users, nil
}

func (r *Repository) DeleteUser(id int64) error {
	query := `
		DELETE FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	exists := false
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// AssignUserToSchedule registra la asignación; repetirla no es un error.
func (r *Repository) AssignUserToSchedule(userID, scheduleID int64) error {
	query := `
		INSERT INTO schedule_users (user_id, schedule_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, schedule_id) DO NOTHING
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, userID, scheduleID)
	return err
}

func (r *Repository) UnassignUserFromSchedule(userID, scheduleID int64) error {
	query := `
		DELETE FROM schedule_users WHERE user_id = $1 AND schedule_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, userID, scheduleID)
	return err
}

func (r *Repository) GetUserScheduleIDs(userID int64) ([]int64, error) {
	query := `
		SELECT schedule_id FROM schedule_users WHERE user_id = $1 ORDER BY schedule_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// UserHasSchedule informa si la agenda está asignada al usuario; la usa la
// política de permisos para decidir la propiedad del recurso.
func (r *Repository) UserHasSchedule(userID, scheduleID int64) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM schedule_users WHERE user_id = $1 AND schedule_id = $2)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	exists := false
	if err := r.dbpool.QueryRowContext(ctx, query, userID, scheduleID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
