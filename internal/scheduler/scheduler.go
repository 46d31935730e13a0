package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// Sweeper defines the two independent sweeps the scheduler drives each
// tick. The timestamp is injected so ticks can be replayed deterministically
// in tests.
type Sweeper interface {
	GenerateDue(ctx context.Context, now time.Time) (int, error)
	DispatchDue(ctx context.Context, now time.Time) (int, error)
}

// Scheduler drives periodic birthday sweeps without cron.
type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *log.Logger
	now      func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// ErrAlreadyRunning is emitted when start is called twice.
var ErrAlreadyRunning = errors.New("scheduler already running")

// ErrNotRunning is emitted when trying to stop an idle scheduler.
var ErrNotRunning = errors.New("scheduler not running")

// New builds a scheduler.
func New(sweeper Sweeper, interval time.Duration, logger *log.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = log.New(log.Writer(), "scheduler ", log.LstdFlags)
	}
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the background loop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	if ctx == nil {
		ctx = context.Background()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	go s.run(loopCtx)
	s.logger.Println("scheduler started")

	return nil
}

// Stop cancels the loop.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrNotRunning
	}

	s.cancel()
	s.running = false
	s.logger.Println("scheduler stopped")
	return nil
}

// IsRunning reports the scheduler state.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx, s.now())

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx, s.now())
		}
	}
}

// Tick runs the generation and dispatch sweeps concurrently, so neither
// blocks the other, and waits for both. Sweep errors are logged; a failing
// sweep never stops the loop.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if _, err := s.sweeper.GenerateDue(ctx, now); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Printf("generate sweep failed: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := s.sweeper.DispatchDue(ctx, now); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Printf("dispatch sweep failed: %v", err)
		}
	}()

	wg.Wait()
}
