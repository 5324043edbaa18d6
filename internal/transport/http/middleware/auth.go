package middleware

import (
	"context"
	"net/http"

	apierrors "auth-api/internal/errors"
	"auth-api/internal/service"

	"github.com/google/uuid"
)

// AccessCookie — имя cookie с access-токеном.
const AccessCookie = "access_token"

// TokenValidator проверяет access-токен и возвращает субъект и email.
// Реализуется сервисным слоем.
type TokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// Principal — аутентифицированный пользователь запроса.
type Principal struct {
	UserID uuid.UUID
	Email  string
}

type principalKey struct{}

// Authenticate требует валидный access-токен в cookie и кладёт Principal
// в контекст. Отсутствие cookie — UNAUTHORIZED, просроченный/битый токен
// маппится через сентинелы сервиса (TOKEN_EXPIRED/TOKEN_INVALID).
func Authenticate(v TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AccessCookie)
			if err != nil || cookie.Value == "" {
				apierrors.WriteError(w, r, service.ErrUnauthorized)
				return
			}

			userID, email, err := v.ValidateAccessToken(cookie.Value)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, Principal{
				UserID: userID,
				Email:  email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom достаёт Principal из контекста.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
