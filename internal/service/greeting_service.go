package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mikorail/user-notification-ts/internal/birthday"
	"github.com/mikorail/user-notification-ts/internal/model"
	"github.com/mikorail/user-notification-ts/internal/notifier"
	"github.com/mikorail/user-notification-ts/internal/repository"
	"github.com/mikorail/user-notification-ts/internal/timezone"
)

// GreetingService owns the two birthday sweeps: generating pending messages
// for users whose local 09:00 has arrived, and dispatching pending messages
// through the email transport.
type GreetingService struct {
	users    repository.UserRepository
	messages repository.MessageRepository
	zones    timezone.Resolver
	sender   notifier.Sender
	redis    redis.Cmdable
	logger   *log.Logger
}

// GreetingDependencies groups constructor requirements for GreetingService.
type GreetingDependencies struct {
	Users    repository.UserRepository
	Messages repository.MessageRepository
	Zones    timezone.Resolver
	Sender   notifier.Sender
	Redis    redis.Cmdable // optional; receipt metadata is skipped when nil
	Logger   *log.Logger
}

// NewGreetingService builds a GreetingService.
func NewGreetingService(deps GreetingDependencies) *GreetingService {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "greeting-service ", log.LstdFlags)
	}
	return &GreetingService{
		users:    deps.Users,
		messages: deps.Messages,
		zones:    deps.Zones,
		sender:   deps.Sender,
		redis:    deps.Redis,
		logger:   logger,
	}
}

// SweepResult aggregates one generate+dispatch pass.
type SweepResult struct {
	Generated int `json:"generated"`
	Sent      int `json:"sent"`
}

// GenerateDue scans for users whose birthday is today (UTC month/day) and
// whose greeting has not been generated this year, and creates a pending
// message for each one whose local delivery window has opened. Returns the
// number of messages created. Per-user failures are logged and skipped.
func (s *GreetingService) GenerateDue(ctx context.Context, now time.Time) (int, error) {
	today := now.UTC()
	users, err := s.users.FindDueUnflagged(ctx, today.Month(), today.Day(), today.Year())
	if err != nil {
		return 0, fmt.Errorf("find due users: %w", err)
	}

	generated := 0
	for _, user := range users {
		ok, err := s.generateForUser(ctx, user, now)
		if err != nil {
			s.logger.Printf("generate for user %s failed: %v", user.ID, err)
			continue
		}
		if ok {
			generated++
		}
	}

	if generated > 0 {
		s.logger.Printf("generated %d birthday message(s)", generated)
	}
	return generated, nil
}

func (s *GreetingService) generateForUser(ctx context.Context, user model.User, now time.Time) (bool, error) {
	delta, resolved := s.localDelta(user.City, user.Continent, user.Birthday, now)

	if birthday.Classify(delta, resolved) == birthday.NotYetDue {
		s.logger.Printf("user %s not due yet, time left: %s", user.Email, birthday.FormatTimeLeft(delta))
		return false, nil
	}
	if !resolved {
		s.logger.Printf("warn: no timezone for city=%q continent=%q, sending immediately", user.City, user.Continent)
	}

	// The snapshot carries this year's occurrence as a plain calendar
	// date, so the dispatch query matches it the same way the user query
	// matched the original birthday.
	occurrence := time.Date(now.UTC().Year(), user.Birthday.Month(), user.Birthday.Day(), 0, 0, 0, 0, time.UTC)

	msg := model.Message{
		ID:        uuid.New(),
		UserID:    user.ID,
		Email:     user.Email,
		Content:   fmt.Sprintf("Happy Birthday to %s", user.FullName()),
		City:      user.City,
		Continent: user.Continent,
		Birthday:  occurrence,
		Delivered: false,
		CreatedAt: now.UTC(),
	}

	// Insert first, flag second. If the insert fails the flag stays false
	// and the user retries next tick; if the flag write fails a duplicate
	// row may appear later, which the delivered guard absorbs at dispatch.
	if err := s.messages.Insert(ctx, msg); err != nil {
		return false, fmt.Errorf("insert message: %w", err)
	}
	if err := s.users.SetGeneratedFlag(ctx, user.ID, true); err != nil {
		return true, fmt.Errorf("set generated flag: %w", err)
	}
	return true, nil
}

// DispatchDue scans undelivered messages for today's UTC month/day and
// sends those whose window has opened. A message is marked delivered only
// after the transport confirms; any failure leaves it for the next tick.
// Returns the number delivered.
func (s *GreetingService) DispatchDue(ctx context.Context, now time.Time) (int, error) {
	today := now.UTC()
	messages, err := s.messages.FindDueUndelivered(ctx, today.Month(), today.Day(), today.Year())
	if err != nil {
		return 0, fmt.Errorf("find due messages: %w", err)
	}

	sent := 0
	for _, msg := range messages {
		ok, err := s.dispatchMessage(ctx, msg, now)
		if err != nil {
			s.logger.Printf("dispatch message %s failed: %v", msg.ID, err)
			continue
		}
		if ok {
			sent++
		}
	}

	if sent > 0 {
		s.logger.Printf("delivered %d birthday message(s)", sent)
	}
	return sent, nil
}

func (s *GreetingService) dispatchMessage(ctx context.Context, msg model.Message, now time.Time) (bool, error) {
	delta, resolved := s.localDelta(msg.City, msg.Continent, msg.Birthday, now)

	if birthday.Classify(delta, resolved) == birthday.NotYetDue {
		s.logger.Printf("message %s not due yet, time left: %s", msg.ID, birthday.FormatTimeLeft(delta))
		return false, nil
	}

	if err := s.sender.Send(ctx, msg.Email, msg.Content); err != nil {
		return false, fmt.Errorf("send: %w", err)
	}

	sentAt := now.UTC()
	if err := s.messages.MarkDelivered(ctx, msg.ID, sentAt); err != nil {
		return false, fmt.Errorf("mark delivered: %w", err)
	}

	if err := s.storeReceipt(ctx, msg, sentAt); err != nil {
		s.logger.Printf("failed to store receipt in redis for %s: %v", msg.ID, err)
	}
	return true, nil
}

// DeliveredMessagesResult captures paginated delivered messages.
type DeliveredMessagesResult struct {
	Messages []model.Message `json:"messages"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

// ListDelivered returns paginated delivered messages.
func (s *GreetingService) ListDelivered(ctx context.Context, page, limit int) (DeliveredMessagesResult, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit
	items, total, err := s.messages.ListDelivered(ctx, offset, limit)
	if err != nil {
		return DeliveredMessagesResult{}, err
	}

	return DeliveredMessagesResult{
		Messages: items,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// RunSweep performs one generation pass followed by one dispatch pass, so a
// message generated this tick can go out on the same tick.
func (s *GreetingService) RunSweep(ctx context.Context, now time.Time) (SweepResult, error) {
	generated, err := s.GenerateDue(ctx, now)
	if err != nil {
		return SweepResult{}, err
	}
	sent, err := s.DispatchDue(ctx, now)
	if err != nil {
		return SweepResult{Generated: generated}, err
	}
	return SweepResult{Generated: generated, Sent: sent}, nil
}

// localDelta computes the signed duration until the entity's local 09:00
// birthday instant. resolved=false means the zone could not be determined.
func (s *GreetingService) localDelta(city, continent string, bday, now time.Time) (time.Duration, bool) {
	zone, ok := timezone.Resolve(s.zones, city, continent)
	if !ok {
		return 0, false
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return 0, false
	}
	_, delta := birthday.NextOccurrence(bday, loc, now)
	return delta, true
}

func (s *GreetingService) storeReceipt(ctx context.Context, msg model.Message, sentAt time.Time) error {
	if s.redis == nil {
		return nil
	}
	key := fmt.Sprintf("delivered_message:%s", msg.ID)
	values := map[string]interface{}{
		"user_id": msg.UserID.String(),
		"email":   msg.Email,
		"sent_at": sentAt.Format(time.RFC3339Nano),
	}
	return s.redis.HSet(ctx, key, values).Err()
}
