package handler

import (
	"errors"
	"net/http"

	"github.com/teenbudget/backend/internal/service"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Signup handles user registration
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, user)
}

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// the "remember me" choice only affects client-side token storage
	RememberMe bool `json:"remember_me"`
}

// Signin handles user authentication
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.svc.Signin(req.Email, req.Password)
	if errors.Is(err, service.ErrEmailNotVerified) {
		h.respondError(w, http.StatusForbidden, "email not verified")
		return
	}
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// VerifyEmail confirms a signup verification code
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.VerifyEmail(req.Email, req.Code); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResendCode re-issues the email verification code
func (h *Handler) ResendCode(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.ResendCode(req.Email); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

type tokenValidationRequest struct {
	Token string `json:"token" validate:"required"`
}

// TokenValidation reports whether a presented token is valid
func (h *Handler) TokenValidation(w http.ResponseWriter, r *http.Request) {
	var req tokenValidationRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := h.svc.ValidateToken(req.Token)
	if err != nil {
		h.respondJSON(w, http.StatusUnauthorized, map[string]any{"valid": false})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"valid": true, "user_id": userID})
}

// PasswordResetRequest emails a reset code
func (h *Handler) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.RequestPasswordReset(req.Email); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

type passwordResetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// PasswordReset consumes a reset code and sets the new password
func (h *Handler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
