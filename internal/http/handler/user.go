package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mikorail/user-notification-ts/internal/model"
	"github.com/mikorail/user-notification-ts/internal/repository"
	"github.com/mikorail/user-notification-ts/internal/service"
)

// UserDirectory abstracts the user CRUD operations for handlers.
type UserDirectory interface {
	Create(ctx context.Context, in service.CreateUserInput) (model.User, error)
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	List(ctx context.Context, limit int) ([]model.User, error)
	Update(ctx context.Context, id uuid.UUID, in service.UpdateUserInput) (model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BirthdayToday(ctx context.Context) ([]model.User, error)
}

// UserHandler provides the user CRUD endpoints.
type UserHandler struct {
	svc UserDirectory
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(svc UserDirectory) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create handles POST /api/user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeUserError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Data inserted successfully",
		"user":    user,
	})
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	users, err := h.svc.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get handles GET /api/user/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	user, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update handles PUT /api/user/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var in service.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/user/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// BirthdayToday handles GET /api/users/birthday-today.
func (h *UserHandler) BirthdayToday(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.BirthdayToday(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(users) == 0 {
		writeError(w, http.StatusNotFound, "No users found with birthdays today")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return uuid.Nil, false
	}
	return id, true
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidBirthday),
		errors.Is(err, service.ErrFutureBirthday):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
