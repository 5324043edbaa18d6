package handlers

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	apierrors "auth-api/internal/errors"
	logctx "auth-api/internal/pkg/log"
	"auth-api/internal/rate"
	"auth-api/internal/service"
	"auth-api/internal/transport/http/middleware"

	"github.com/google/uuid"
)

type signUpResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

// SignUp — POST /auth/sign-up.
func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var in signUpRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteValidationErrors(w, []apierrors.FieldError{{Field: "body", Message: "invalid request body"}})
		return
	}

	if fields := in.Validate(); len(fields) > 0 {
		apierrors.WriteValidationErrors(w, fields)
		return
	}

	user, err := h.svc.SignUp(r.Context(), service.SignUpInput{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     in.Email,
		Password:  in.Password,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, signUpResponse{UserID: user.ID})
}

// ConfirmEmail — POST /auth/confirm-email.
func (h *Handlers) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	var in confirmEmailRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteValidationErrors(w, []apierrors.FieldError{{Field: "body", Message: "invalid request body"}})
		return
	}

	if fields := in.Validate(); len(fields) > 0 {
		apierrors.WriteValidationErrors(w, fields)
		return
	}

	if err := h.svc.ConfirmEmail(r.Context(), in.Email, in.Code); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "email confirmed"})
}

// ResendConfirmation — POST /auth/resend-confirmation.
// Ответ одинаков для любого адреса (anti-enumeration).
func (h *Handlers) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var in resendConfirmationRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteValidationErrors(w, []apierrors.FieldError{{Field: "body", Message: "invalid request body"}})
		return
	}

	if fields := in.Validate(); len(fields) > 0 {
		apierrors.WriteValidationErrors(w, fields)
		return
	}

	if err := h.svc.ResendConfirmation(r.Context(), in.Email); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "if the email is registered, a confirmation code has been sent"})
}

// LogIn — POST /auth/log-in.
// При сконфигурированном лимитере неудачные попытки считаются по паре
// email+IP; сбои Redis не блокируют вход (fail-open).
func (h *Handlers) LogIn(w http.ResponseWriter, r *http.Request) {
	var in logInRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteValidationErrors(w, []apierrors.FieldError{{Field: "body", Message: "invalid request body"}})
		return
	}

	if fields := in.Validate(); len(fields) > 0 {
		apierrors.WriteValidationErrors(w, fields)
		return
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	ip := clientIP(r)

	if h.limiter != nil {
		if err := h.limiter.CheckLogin(r.Context(), email, ip); err != nil {
			if errors.Is(err, rate.ErrRateLimited) {
				apierrors.WriteError(w, r, err)
				return
			}
			logctx.From(r.Context()).Warn("login_limiter_check_failed", slog.String("err", err.Error()))
		}
	}

	session, err := h.svc.Login(r.Context(), in.Email, in.Password, in.RememberMe)
	if err != nil {
		if h.limiter != nil && errors.Is(err, service.ErrInvalidCredentials) {
			if incErr := h.limiter.IncrementLogin(r.Context(), email, ip); incErr != nil {
				logctx.From(r.Context()).Warn("login_limiter_incr_failed", slog.String("err", incErr.Error()))
			}
		}
		apierrors.WriteError(w, r, err)
		return
	}

	if h.limiter != nil {
		if err := h.limiter.ResetLogin(r.Context(), email, ip); err != nil {
			logctx.From(r.Context()).Warn("login_limiter_reset_failed", slog.String("err", err.Error()))
		}
	}

	h.cookies.SetSession(w, session)
	writeJSON(w, http.StatusOK, messageResponse{Message: "logged in"})
}

// LogOut — POST /auth/log-out.
// Никогда не завершается ошибкой: отзыв best-effort, cookie сбрасываются всегда.
func (h *Handlers) LogOut(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(refreshCookie); err == nil {
		h.svc.Logout(r.Context(), cookie.Value)
	}

	h.cookies.Clear(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

// Refresh — POST /auth/refresh.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookie)
	if err != nil || cookie.Value == "" {
		apierrors.WriteError(w, r, service.ErrUnauthorized)
		return
	}

	session, err := h.svc.Refresh(r.Context(), cookie.Value)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.cookies.SetSession(w, session)
	writeJSON(w, http.StatusOK, messageResponse{Message: "token refreshed"})
}

type profileResponse struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	EmailConfirmed bool      `json:"email_confirmed"`
	CreatedAt      time.Time `json:"created_at"`
}

// Me — GET /auth/me.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthorized)
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), principal.UserID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		EmailConfirmed: user.EmailConfirmed,
		CreatedAt:      user.CreatedAt,
	})
}

// clientIP извлекает адрес клиента из RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
