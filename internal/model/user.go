package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a stored user profile. Birthday carries a calendar date
// only; the time-of-day component is ignored everywhere.
type User struct {
	ID                uuid.UUID `db:"id" json:"id"`
	FirstName         string    `db:"first_name" json:"first_name"`
	LastName          string    `db:"last_name" json:"last_name,omitempty"`
	Email             string    `db:"email" json:"email"`
	City              string    `db:"city" json:"city"`
	Continent         string    `db:"continent" json:"continent"`
	Birthday          time.Time `db:"birthday" json:"birthday"`
	GeneratedThisYear bool      `db:"generated_this_year" json:"generated_this_year"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// FullName renders the greeting name as "First Last".
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
