package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is a pending or delivered birthday greeting. Email, city,
// continent and birthday are point-in-time copies of the owning user's
// fields, taken when the message was generated: dispatch must not depend
// on the user row still matching at send time.
type Message struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	Email     string     `db:"email" json:"email"`
	Content   string     `db:"content" json:"content"`
	City      string     `db:"city" json:"city"`
	Continent string     `db:"continent" json:"continent"`
	Birthday  time.Time  `db:"birthday" json:"birthday"`
	Delivered bool       `db:"delivered" json:"delivered"`
	SentAt    *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
