package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/render"
	"github.com/templui/goalnote/internal/service"
	"github.com/templui/goalnote/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *validation.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	*model.User
	*service.TokenPair
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}
	if err := checkPayload(h.validator, req); err != nil {
		render.Error(w, r, err)
		return
	}

	user, pair, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	render.JSON(w, http.StatusOK, loginResponse{User: user, TokenPair: pair})
}

// Tokens exchanges the refresh token from the Authorization header for a new pair.
func (h *AuthHandler) Tokens(w http.ResponseWriter, r *http.Request) {
	token, err := service.BearerToken(r.Header.Get("Authorization"))
	if err != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		render.Error(w, r, err)
		return
	}

	pair, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, pair)
}
