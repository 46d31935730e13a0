package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mikorail/user-notification-ts/internal/model"
	"github.com/mikorail/user-notification-ts/internal/repository"
)

var _ repository.MessageRepository = (*MessageRepository)(nil)

// MessageRepository provides PostgreSQL backed message operations.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new repository instance.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, user_id, email, content, city, continent, birthday, delivered, sent_at, created_at`

// Insert stores a freshly generated, undelivered message.
func (r *MessageRepository) Insert(ctx context.Context, msg model.Message) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO messages (id, user_id, email, content, city, continent, birthday, delivered, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		msg.ID, msg.UserID, msg.Email, msg.Content, msg.City, msg.Continent,
		msg.Birthday, msg.Delivered, msg.CreatedAt)
	return err
}

// FindDueUndelivered retrieves undelivered messages for today's UTC month/day.
func (r *MessageRepository) FindDueUndelivered(ctx context.Context, month time.Month, day, yearCeiling int) ([]model.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+messageColumns+`
        FROM messages
        WHERE EXTRACT(MONTH FROM birthday) = $1
          AND EXTRACT(DAY FROM birthday) = $2
          AND EXTRACT(YEAR FROM birthday) <= $3
          AND delivered = false
        ORDER BY created_at ASC`,
		int(month), day, yearCeiling)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMessages(rows)
}

// MarkDelivered flips the delivered flag and stamps sent_at. The guard on
// delivered keeps the operation idempotent: a second call for the same
// message affects zero rows and reports ErrNotFound.
func (r *MessageRepository) MarkDelivered(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE messages
        SET delivered = true, sent_at = $2
        WHERE id = $1 AND delivered = false`, id, sentAt)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteForUserBirthday removes a user's messages keyed to one birthday date.
func (r *MessageRepository) DeleteForUserBirthday(ctx context.Context, userID uuid.UUID, birthday time.Time) error {
	_, err := r.db.ExecContext(ctx, `
        DELETE FROM messages
        WHERE user_id = $1
          AND EXTRACT(MONTH FROM birthday) = $2
          AND EXTRACT(DAY FROM birthday) = $3`,
		userID, int(birthday.Month()), birthday.Day())
	return err
}

// ListDelivered lists delivered messages with pagination and counts total.
func (r *MessageRepository) ListDelivered(ctx context.Context, offset, limit int) ([]model.Message, int, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+messageColumns+`
        FROM messages
        WHERE delivered = true
        ORDER BY sent_at DESC NULLS LAST, created_at DESC
        OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	messages, err := collectMessages(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM messages WHERE delivered = true`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func collectMessages(rows *sql.Rows) ([]model.Message, error) {
	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		var sentAt sql.NullTime
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Email, &msg.Content, &msg.City,
			&msg.Continent, &msg.Birthday, &msg.Delivered, &sentAt, &msg.CreatedAt); err != nil {
			return nil, err
		}
		if sentAt.Valid {
			ts := sentAt.Time
			msg.SentAt = &ts
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
