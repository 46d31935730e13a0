package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mikorail/user-notification-ts/internal/model"
	"github.com/mikorail/user-notification-ts/internal/repository"
	"github.com/mikorail/user-notification-ts/internal/service"
)

// fakeDirectory implements UserDirectory for handler tests.
type fakeDirectory struct {
	createErr error
	getErr    error
	user      model.User
	today     []model.User
}

func (f *fakeDirectory) Create(_ context.Context, in service.CreateUserInput) (model.User, error) {
	if f.createErr != nil {
		return model.User{}, f.createErr
	}
	return model.User{
		ID:        uuid.New(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		City:      in.City,
		Continent: in.Continent,
		Birthday:  time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeDirectory) Get(_ context.Context, _ uuid.UUID) (model.User, error) {
	return f.user, f.getErr
}

func (f *fakeDirectory) List(_ context.Context, _ int) ([]model.User, error) {
	return []model.User{f.user}, nil
}

func (f *fakeDirectory) Update(_ context.Context, _ uuid.UUID, _ service.UpdateUserInput) (model.User, error) {
	return f.user, f.getErr
}

func (f *fakeDirectory) Delete(_ context.Context, _ uuid.UUID) error {
	return f.getErr
}

func (f *fakeDirectory) BirthdayToday(_ context.Context) ([]model.User, error) {
	return f.today, nil
}

func newUserRouter(dir *fakeDirectory) http.Handler {
	h := NewUserHandler(dir)
	r := chi.NewRouter()
	r.Post("/api/user", h.Create)
	r.Get("/api/user/{id}", h.Get)
	r.Delete("/api/user/{id}", h.Delete)
	r.Get("/api/users/birthday-today", h.BirthdayToday)
	return r
}

func TestCreateUserReturns201(t *testing.T) {
	router := newUserRouter(&fakeDirectory{})

	body := `{"first_name":"Ann","email":"a@x.com","city":"London","continent":"Europe","birthday":"1990-03-10"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string     `json:"message"`
		User    model.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.User.Email != "a@x.com" {
		t.Errorf("email = %q", resp.User.Email)
	}
}

func TestCreateUserValidationMapsTo400(t *testing.T) {
	router := newUserRouter(&fakeDirectory{createErr: service.ErrMissingFields})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewBufferString(`{}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateUserDuplicateMapsTo409(t *testing.T) {
	router := newUserRouter(&fakeDirectory{createErr: repository.ErrDuplicateEmail})

	body := `{"first_name":"Ann","email":"a@x.com","city":"London","continent":"Europe","birthday":"1990-03-10"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewBufferString(body))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestGetUserNotFoundMapsTo404(t *testing.T) {
	router := newUserRouter(&fakeDirectory{getErr: repository.ErrNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetUserBadIDMapsTo400(t *testing.T) {
	router := newUserRouter(&fakeDirectory{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBirthdayTodayEmptyMapsTo404(t *testing.T) {
	router := newUserRouter(&fakeDirectory{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/birthday-today", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when nobody matches, got %d", w.Code)
	}
}
