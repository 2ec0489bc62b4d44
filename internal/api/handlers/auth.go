package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/dto"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/middleware"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/validation"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/auth"
)

// Accounts is the identity surface the handlers need.
type Accounts interface {
	auth.Authenticator
	auth.AccountManager
}

type AuthHandler struct {
	accounts Accounts
	logger   *slog.Logger
}

func NewAuthHandler(accounts Accounts, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, logger: logger}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.accounts.Register(r.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     validation.SanitizeString(req.Name),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Token: resp.Token,
		User:  dto.NewUserDTO(resp.User),
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.accounts.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token: resp.Token,
		User:  dto.NewUserDTO(resp.User),
	})
}

// Me handles GET /api/v1/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.GetUserByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewUserDTO(user))
}

// UpdateProfile handles PUT /api/v1/me
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.accounts.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), auth.ProfileInput{
		Name:  validation.SanitizeString(req.Name),
		Email: req.Email,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewUserDTO(user))
}

// ChangePassword handles PUT /api/v1/me/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.accounts.ChangePassword(r.Context(), middleware.GetUserID(r.Context()), req.CurrentPassword, req.NewPassword)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Current password is incorrect"})
		return
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Password updated"})
}

// DeleteAccount handles DELETE /api/v1/me
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteAccount(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
