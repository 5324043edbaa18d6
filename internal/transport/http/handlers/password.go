package handlers

import (
	"net/http"

	apierrors "auth-api/internal/errors"
	"auth-api/internal/service"
	"auth-api/internal/transport/http/middleware"
)

// ForgotPassword — POST /auth/forgot-password.
// Всегда отвечает одинаковым generic-успехом (anti-enumeration).
func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in forgotPasswordRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteValidationErrors(w, []apierrors.FieldError{{Field: "body", Message: "invalid request body"}})
		return
	}

	if fields := in.Validate(); len(fields) > 0 {
		apierrors.WriteValidationErrors(w, fields)
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), in.Email); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "if the email is registered, a reset code has been sent"})
}

// VerifyForgotPassword — POST /auth/verify-forgot-password.
// Успех ведёт себя как вход: выставляются обе auth-cookie.
func (h *Handlers) VerifyForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in verifyForgotPasswordRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteValidationErrors(w, []apierrors.FieldError{{Field: "body", Message: "invalid request body"}})
		return
	}

	if fields := in.Validate(); len(fields) > 0 {
		apierrors.WriteValidationErrors(w, fields)
		return
	}

	session, err := h.svc.VerifyForgotPassword(r.Context(), in.Email, in.Code)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.cookies.SetSession(w, session)
	writeJSON(w, http.StatusOK, messageResponse{Message: "code verified"})
}

// ChangePassword — POST /auth/change-password.
// Требует access-cookie (мидлвар) и активную refresh-cookie: смена пароля
// потребляет предъявленную сессию и отзывает остальные.
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthorized)
		return
	}

	refresh, err := r.Cookie(refreshCookie)
	if err != nil || refresh.Value == "" {
		apierrors.WriteError(w, r, service.ErrUnauthorized)
		return
	}

	var in changePasswordRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteValidationErrors(w, []apierrors.FieldError{{Field: "body", Message: "invalid request body"}})
		return
	}

	if fields := in.Validate(); len(fields) > 0 {
		apierrors.WriteValidationErrors(w, fields)
		return
	}

	if in.NewPassword != in.ConfirmPassword {
		apierrors.WriteError(w, r, apierrors.ErrPasswordMismatch)
		return
	}

	session, err := h.svc.ChangePassword(r.Context(), principal.UserID, refresh.Value, in.CurrentPassword, in.NewPassword)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.cookies.SetSession(w, session)
	writeJSON(w, http.StatusOK, messageResponse{Message: "password changed"})
}

// SetPassword — POST /auth/set-password.
// Пост-ресетный вариант ChangePassword: текущий пароль не требуется,
// право подтверждено кодом сброса.
func (h *Handlers) SetPassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthorized)
		return
	}

	refresh, err := r.Cookie(refreshCookie)
	if err != nil || refresh.Value == "" {
		apierrors.WriteError(w, r, service.ErrUnauthorized)
		return
	}

	var in setPasswordRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteValidationErrors(w, []apierrors.FieldError{{Field: "body", Message: "invalid request body"}})
		return
	}

	if fields := in.Validate(); len(fields) > 0 {
		apierrors.WriteValidationErrors(w, fields)
		return
	}

	if in.NewPassword != in.ConfirmPassword {
		apierrors.WriteError(w, r, apierrors.ErrPasswordMismatch)
		return
	}

	session, err := h.svc.SetPassword(r.Context(), principal.UserID, refresh.Value, in.NewPassword)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.cookies.SetSession(w, session)
	writeJSON(w, http.StatusOK, messageResponse{Message: "password set"})
}
