package handlers

import (
	"net/http"

	apierrors "auth-api/internal/errors"
	"auth-api/internal/service"
	"auth-api/internal/transport/http/middleware"
)

// RequestEmailChange — POST /auth/request-email-change.
// Ответ одинаков и для свободного, и для занятого адреса (anti-enumeration).
func (h *Handlers) RequestEmailChange(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthorized)
		return
	}

	var in requestEmailChangeRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteValidationErrors(w, []apierrors.FieldError{{Field: "body", Message: "invalid request body"}})
		return
	}

	if fields := in.Validate(); len(fields) > 0 {
		apierrors.WriteValidationErrors(w, fields)
		return
	}

	if err := h.svc.RequestEmailChange(r.Context(), principal.UserID, in.NewEmail); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "if the email is available, a confirmation code has been sent"})
}

type confirmEmailChangeResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// ConfirmEmailChange — POST /auth/confirm-email-change.
// Успех ротирует access-cookie: в старом токене остался прежний email.
func (h *Handlers) ConfirmEmailChange(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthorized)
		return
	}

	var in confirmEmailChangeRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteValidationErrors(w, []apierrors.FieldError{{Field: "body", Message: "invalid request body"}})
		return
	}

	if fields := in.Validate(); len(fields) > 0 {
		apierrors.WriteValidationErrors(w, fields)
		return
	}

	user, accessToken, err := h.svc.ConfirmEmailChange(r.Context(), principal.UserID, in.NewEmail, in.Code)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.cookies.SetAccessToken(w, accessToken)
	writeJSON(w, http.StatusOK, confirmEmailChangeResponse{
		Message: "email changed",
		Email:   user.Email,
	})
}
