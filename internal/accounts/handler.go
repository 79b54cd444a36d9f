package accounts

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/veloria/accountd/internal/platform/httpx"
)

// Handler wires the account endpoints to the service and serializes results
// and errors to JSON.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers account routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Get("/users", h.listUsers)
	r.Put("/updateProfile/{id}", h.updateProfile)
	r.Delete("/deleteAccount/{id}", h.deleteAccount)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		httpx.Message(w, http.StatusCreated, "registration completed")
	case errors.Is(err, ErrDuplicate):
		httpx.Message(w, http.StatusBadRequest, "username or email already registered")
	default:
		h.logger.Error("register failed", slog.Any("error", err))
		httpx.Internal(w)
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "email and password are required")
		return
	}

	account, err := h.service.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		httpx.JSON(w, http.StatusOK, loginResponse{
			Message: "login successful",
			User:    newUserResponse(account),
		})
	case errors.Is(err, ErrNotFound):
		httpx.Message(w, http.StatusBadRequest, "email not found")
	case errors.Is(err, ErrInvalidCredentials):
		httpx.Message(w, http.StatusBadRequest, "wrong password")
	default:
		h.logger.Error("login failed", slog.Any("error", err))
		httpx.Internal(w)
	}
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		h.logger.Error("list users failed", slog.Any("error", err))
		httpx.Internal(w)
		return
	}

	items := make([]listItem, len(accounts))
	for i, a := range accounts {
		items[i] = listItem{ID: a.ID, Username: a.Username, Email: a.Email}
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req updateProfileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "old password is required")
		return
	}

	err = h.service.UpdateProfile(r.Context(), id, req.Username, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		httpx.Message(w, http.StatusOK, "profile updated")
	case errors.Is(err, ErrNotFound):
		httpx.Message(w, http.StatusNotFound, "user not found")
	case errors.Is(err, ErrInvalidCredentials):
		httpx.Message(w, http.StatusBadRequest, "wrong old password")
	default:
		h.logger.Error("update profile failed", slog.Any("error", err))
		httpx.Internal(w)
	}
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid user id")
		return
	}

	err = h.service.DeleteAccount(r.Context(), id)
	switch {
	case err == nil:
		httpx.Message(w, http.StatusOK, "account deleted")
	case errors.Is(err, ErrNotFound):
		httpx.Message(w, http.StatusNotFound, "user not found")
	default:
		h.logger.Error("delete account failed", slog.Any("error", err))
		httpx.Internal(w)
	}
}
