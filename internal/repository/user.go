package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mikorail/user-notification-ts/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when an insert or update collides with the
// unique email index.
var ErrDuplicateEmail = errors.New("duplicate email")

// UserRepository defines the database operations required for users.
type UserRepository interface {
	Create(ctx context.Context, user model.User) error
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	List(ctx context.Context, limit int) ([]model.User, error)
	Update(ctx context.Context, user model.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByBirthday returns users whose birthday falls on the given UTC
	// month/day with a birth year at or before yearCeiling.
	FindByBirthday(ctx context.Context, month time.Month, day, yearCeiling int) ([]model.User, error)

	// FindDueUnflagged is FindByBirthday restricted to users whose
	// generated_this_year flag is still false.
	FindDueUnflagged(ctx context.Context, month time.Month, day, yearCeiling int) ([]model.User, error)

	// SetGeneratedFlag flips generated_this_year for one user.
	SetGeneratedFlag(ctx context.Context, id uuid.UUID, generated bool) error
}
