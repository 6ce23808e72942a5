package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lostfound/moderation/internal/moderation"
	"github.com/lostfound/moderation/internal/observability"
	"github.com/lostfound/moderation/internal/services"
	"github.com/lostfound/moderation/internal/store"
	"github.com/lostfound/moderation/types"
)

// UserHandler provides HTTP handlers for account moderation.
type UserHandler struct {
	users    *services.UserService
	metrics  *observability.Metrics
	validate *validator.Validate
}

func NewUserHandler(users *services.UserService, metrics *observability.Metrics) *UserHandler {
	return &UserHandler{
		users:    users,
		metrics:  metrics,
		validate: validator.New(),
	}
}

// UserRouter registers user routes on the given router.
func UserRouter(
	r chi.Router,
	users *services.UserService,
	metrics *observability.Metrics,
	limiter func(http.Handler) http.Handler,
) {
	handler := NewUserHandler(users, metrics)

	r.Get("/", handler.ListUsers)
	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.GetUser)
		if limiter != nil {
			r.With(limiter).Put("/", handler.UpdateUser)
		} else {
			r.Put("/", handler.UpdateUser)
		}
	})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter, err := moderation.ParseUserFilter(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, err := h.users.List(r.Context(), filter, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, UserListResponse{Users: users})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseRecordID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseRecordID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UserStatusRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := types.UserStatus(req.Status)
	action, err := moderation.UserActionFor(status)
	if err != nil {
		writeModerationError(w, err, "user")
		return
	}

	updated, err := h.users.SetStatus(r.Context(), id, status)
	h.metrics.ObserveAction(services.KindUser, string(action), err)
	if err != nil {
		writeModerationError(w, err, "user")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// UserStatusRequest is the payload of PUT /api/admin/users/{userID}.
type UserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

// UserListResponse is the list response payload.
type UserListResponse struct {
	Users []types.User `json:"users"`
}
