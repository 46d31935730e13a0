package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mikorail/user-notification-ts/internal/model"
)

// MessageRepository defines the database operations required for messages.
type MessageRepository interface {
	Insert(ctx context.Context, msg model.Message) error

	// FindDueUndelivered returns undelivered messages whose denormalized
	// birthday falls on the given UTC month/day with a year at or before
	// yearCeiling.
	FindDueUndelivered(ctx context.Context, month time.Month, day, yearCeiling int) ([]model.Message, error)

	// MarkDelivered records a confirmed send. It only touches rows still
	// undelivered; marking an already-delivered message returns
	// ErrNotFound so callers never double-send.
	MarkDelivered(ctx context.Context, id uuid.UUID, sentAt time.Time) error

	// DeleteForUserBirthday removes messages a user accrued for a specific
	// birthday date; used when the birthday attribute changes.
	DeleteForUserBirthday(ctx context.Context, userID uuid.UUID, birthday time.Time) error

	// ListDelivered lists delivered messages with pagination and counts
	// the total.
	ListDelivered(ctx context.Context, offset, limit int) ([]model.Message, int, error)
}
