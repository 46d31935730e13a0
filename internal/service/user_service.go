package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mikorail/user-notification-ts/internal/model"
	"github.com/mikorail/user-notification-ts/internal/repository"
)

// Validation errors surfaced to the CRUD layer. Never retried.
var (
	ErrMissingFields   = errors.New("required fields are missing or empty")
	ErrInvalidBirthday = errors.New("invalid birthday format")
	ErrFutureBirthday  = errors.New("birthday date cannot be in the future")
)

// birthdayLayouts are the accepted input formats, tried in order.
var birthdayLayouts = []string{"2006-01-02", "January 02 2006", "02 January 2006"}

// UserService orchestrates user CRUD with validation and the cascade rules
// tied to birthday changes.
type UserService struct {
	users    repository.UserRepository
	messages repository.MessageRepository
	now      func() time.Time
}

// NewUserService builds a UserService. nowFn may be nil, defaulting to
// time.Now; tests inject a fixed clock.
func NewUserService(users repository.UserRepository, messages repository.MessageRepository, nowFn func() time.Time) *UserService {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &UserService{users: users, messages: messages, now: nowFn}
}

// CreateUserInput carries the user-creation payload.
type CreateUserInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	City      string `json:"city"`
	Continent string `json:"continent"`
	Birthday  string `json:"birthday"`
}

// UpdateUserInput carries a partial update; empty fields keep their stored
// values.
type UpdateUserInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	City      string `json:"city"`
	Continent string `json:"continent"`
	Birthday  string `json:"birthday"`
}

// Create validates and stores a new user. The generated flag starts false.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (model.User, error) {
	if in.FirstName == "" || in.Email == "" || in.City == "" || in.Continent == "" || in.Birthday == "" {
		return model.User{}, ErrMissingFields
	}

	bday, err := s.parseBirthday(in.Birthday)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		ID:        uuid.New(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		City:      TitleCase(in.City),
		Continent: TitleCase(in.Continent),
		Birthday:  bday,
		CreatedAt: s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Get fetches one user.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	return s.users.Get(ctx, id)
}

// List returns up to limit users; limit <= 0 returns all.
func (s *UserService) List(ctx context.Context, limit int) ([]model.User, error) {
	return s.users.List(ctx, limit)
}

// Update applies a partial update. When the birthday actually changes, the
// messages generated for the old birthday are deleted and the
// generated-this-year flag resets, so the new date is eligible again.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (model.User, error) {
	current, err := s.users.Get(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	updated := current
	if in.FirstName != "" {
		updated.FirstName = in.FirstName
	}
	if in.LastName != "" {
		updated.LastName = in.LastName
	}
	if in.Email != "" {
		updated.Email = in.Email
	}
	if in.City != "" {
		updated.City = TitleCase(in.City)
	}
	if in.Continent != "" {
		updated.Continent = TitleCase(in.Continent)
	}

	if in.Birthday != "" {
		bday, err := s.parseBirthday(in.Birthday)
		if err != nil {
			return model.User{}, err
		}
		if !sameDate(bday, current.Birthday) {
			if err := s.messages.DeleteForUserBirthday(ctx, id, current.Birthday); err != nil {
				return model.User{}, fmt.Errorf("delete stale messages: %w", err)
			}
			updated.GeneratedThisYear = false
		}
		updated.Birthday = bday
	}

	if err := s.users.Update(ctx, updated); err != nil {
		return model.User{}, err
	}
	return updated, nil
}

// Delete removes a user; messages cascade at the store level.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

// BirthdayToday returns users whose birthday falls on today's UTC date.
func (s *UserService) BirthdayToday(ctx context.Context) ([]model.User, error) {
	today := s.now().UTC()
	return s.users.FindByBirthday(ctx, today.Month(), today.Day(), today.Year())
}

func (s *UserService) parseBirthday(raw string) (time.Time, error) {
	for _, layout := range birthdayLayouts {
		bday, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if bday.After(s.now().UTC()) {
			return time.Time{}, ErrFutureBirthday
		}
		return bday, nil
	}
	return time.Time{}, ErrInvalidBirthday
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// TitleCase uppercases the first letter of each word and lowercases the
// rest, normalizing stored city and continent names.
func TitleCase(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
