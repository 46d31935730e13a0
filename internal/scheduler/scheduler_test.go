package scheduler

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"
)

type recordingSweeper struct {
	mu         sync.Mutex
	generates  []time.Time
	dispatches []time.Time
	genErr     error
}

func (r *recordingSweeper) GenerateDue(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generates = append(r.generates, now)
	return 0, r.genErr
}

func (r *recordingSweeper) DispatchDue(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatches = append(r.dispatches, now)
	return 0, nil
}

func (r *recordingSweeper) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.generates), len(r.dispatches)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestTickRunsBothSweeps(t *testing.T) {
	sweeper := &recordingSweeper{}
	s := New(sweeper, time.Minute, quietLogger())

	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	s.Tick(context.Background(), now)

	gen, disp := sweeper.counts()
	if gen != 1 || disp != 1 {
		t.Fatalf("expected one of each sweep, got %d/%d", gen, disp)
	}
	if !sweeper.generates[0].Equal(now) || !sweeper.dispatches[0].Equal(now) {
		t.Fatal("both sweeps must receive the tick timestamp")
	}
}

func TestTickIsolatesSweepFailure(t *testing.T) {
	sweeper := &recordingSweeper{genErr: errors.New("boom")}
	s := New(sweeper, time.Minute, quietLogger())

	s.Tick(context.Background(), time.Now())

	// The dispatch sweep still ran despite the generate failure.
	_, disp := sweeper.counts()
	if disp != 1 {
		t.Fatalf("dispatch sweep must run despite generate failure, got %d", disp)
	}
}

func TestStartTwiceFails(t *testing.T) {
	s := New(&recordingSweeper{}, time.Hour, quietLogger())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("first start: %v", err)
	}
	defer s.Stop()

	if err := s.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestStopWithoutStartFails(t *testing.T) {
	s := New(&recordingSweeper{}, time.Hour, quietLogger())
	if err := s.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}

func TestStartRunsImmediateSweep(t *testing.T) {
	sweeper := &recordingSweeper{}
	s := New(sweeper, time.Hour, quietLogger())

	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if gen, disp := sweeper.counts(); gen >= 1 && disp >= 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expected an immediate sweep after start")
}

func TestStopPreventsFurtherTicks(t *testing.T) {
	sweeper := &recordingSweeper{}
	s := New(sweeper, 20*time.Millisecond, quietLogger())

	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if s.IsRunning() {
		t.Fatal("scheduler should report stopped")
	}

	gen, _ := sweeper.counts()
	time.Sleep(60 * time.Millisecond)
	after, _ := sweeper.counts()
	if after > gen+1 {
		t.Fatalf("sweeps continued after stop: %d -> %d", gen, after)
	}
}
