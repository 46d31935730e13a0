package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mikorail/user-notification-ts/internal/model"
	"github.com/mikorail/user-notification-ts/internal/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

const uniqueViolation = "23505"

// UserRepository provides PostgreSQL backed user operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new repository instance.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, city, continent, birthday, generated_this_year, created_at`

// Create inserts a user row. Email collisions surface as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user model.User) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO users (id, first_name, last_name, email, city, continent, birthday, generated_this_year, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.City, user.Continent,
		user.Birthday, user.GeneratedThisYear, user.CreatedAt)
	return mapUniqueViolation(err)
}

// Get fetches a single user by id.
func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT `+userColumns+`
        FROM users
        WHERE id = $1`, id)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, repository.ErrNotFound
	}
	return user, err
}

// List returns users ordered by creation time. limit <= 0 means no limit.
func (r *UserRepository) List(ctx context.Context, limit int) ([]model.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        ORDER BY created_at ASC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

// Update rewrites all mutable user fields.
func (r *UserRepository) Update(ctx context.Context, user model.User) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE users
        SET first_name = $2, last_name = $3, email = $4, city = $5, continent = $6,
            birthday = $7, generated_this_year = $8
        WHERE id = $1`,
		user.ID, user.FirstName, user.LastName, user.Email, user.City, user.Continent,
		user.Birthday, user.GeneratedThisYear)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return requireAffected(res)
}

// Delete removes a user; its messages go with it via the FK cascade.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// FindByBirthday returns users whose birthday matches the UTC month/day.
func (r *UserRepository) FindByBirthday(ctx context.Context, month time.Month, day, yearCeiling int) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+userColumns+`
        FROM users
        WHERE EXTRACT(MONTH FROM birthday) = $1
          AND EXTRACT(DAY FROM birthday) = $2
          AND EXTRACT(YEAR FROM birthday) <= $3`,
		int(month), day, yearCeiling)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

// FindDueUnflagged returns birthday matches not yet flagged this year.
func (r *UserRepository) FindDueUnflagged(ctx context.Context, month time.Month, day, yearCeiling int) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+userColumns+`
        FROM users
        WHERE EXTRACT(MONTH FROM birthday) = $1
          AND EXTRACT(DAY FROM birthday) = $2
          AND EXTRACT(YEAR FROM birthday) <= $3
          AND generated_this_year = false`,
		int(month), day, yearCeiling)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

// SetGeneratedFlag updates the generated_this_year marker for one user.
func (r *UserRepository) SetGeneratedFlag(ctx context.Context, id uuid.UUID, generated bool) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE users
        SET generated_this_year = $2
        WHERE id = $1`, id, generated)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (model.User, error) {
	var user model.User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.City, &user.Continent, &user.Birthday, &user.GeneratedThisYear, &user.CreatedAt)
	return user, err
}

func collectUsers(rows *sql.Rows) ([]model.User, error) {
	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return err
}
