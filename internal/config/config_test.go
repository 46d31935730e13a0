package config

import (
	"testing"
	"time"
)

func TestSchedulerIntervalClamp(t *testing.T) {
	t.Setenv("SCHEDULER_INTERVAL", "5m")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	// The due window assumes sweeps at least every minute.
	if cfg.Scheduler.Interval != time.Minute {
		t.Fatalf("expected interval to be clamped to 1m, got %v", cfg.Scheduler.Interval)
	}
}

func TestSchedulerIntervalBelowMinuteKept(t *testing.T) {
	t.Setenv("SCHEDULER_INTERVAL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Scheduler.Interval != 30*time.Second {
		t.Fatalf("expected 30s, got %v", cfg.Scheduler.Interval)
	}
}

func TestEmailDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Email.Endpoint == "" {
		t.Fatal("email endpoint default missing")
	}
	if cfg.Email.Timeout != 15*time.Second {
		t.Fatalf("expected 15s email timeout, got %v", cfg.Email.Timeout)
	}
}

func TestInvalidInterval(t *testing.T) {
	t.Setenv("SCHEDULER_INTERVAL", "often")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid interval")
	}
}
