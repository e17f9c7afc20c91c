package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/goalnote/internal/render"
	"github.com/templui/goalnote/internal/service"
	"github.com/templui/goalnote/internal/validation"
)

type UserHandler struct {
	userService *service.UserService
	validator   *validation.Validator
}

func NewUserHandler(userService *service.UserService, validator *validation.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"max=255"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}
	if err := checkPayload(h.validator, req); err != nil {
		render.Error(w, r, err)
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	render.JSON(w, http.StatusCreated, user)
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	user, err := h.userService.ByID(r.Context(), o)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, user)
}
