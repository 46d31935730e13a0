package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mikorail/user-notification-ts/internal/service"
)

type fakeRunner struct {
	result service.SweepResult
	err    error
}

func (f *fakeRunner) RunSweep(_ context.Context, _ time.Time) (service.SweepResult, error) {
	return f.result, f.err
}

type fakeLister struct {
	result service.DeliveredMessagesResult
}

func (f *fakeLister) ListDelivered(_ context.Context, page, limit int) (service.DeliveredMessagesResult, error) {
	f.result.Page = page
	f.result.Limit = limit
	return f.result, nil
}

func TestSweepReportsCounts(t *testing.T) {
	h := NewGreetingHandler(&fakeRunner{result: service.SweepResult{Generated: 2, Sent: 1}}, &fakeLister{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sweep", nil)
	h.Sweep(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result service.SweepResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.Generated != 2 || result.Sent != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestListDeliveredDefaultsPagination(t *testing.T) {
	lister := &fakeLister{}
	h := NewGreetingHandler(&fakeRunner{}, lister)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/messages/sent", nil)
	h.ListDelivered(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result service.DeliveredMessagesResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.Page != 1 || result.Limit != 20 {
		t.Fatalf("expected default page/limit, got %d/%d", result.Page, result.Limit)
	}
}
