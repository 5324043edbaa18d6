// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку сервисного слоя (сентинелы service/rate),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - стабильный машиночитаемый код и краткое безопасное message
//     без утечки деталей.
//
// Источник истинности по маппингу: комментарии к сентинелам в пакете service.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"auth-api/internal/rate"
	"auth-api/internal/service"
)

// ErrPasswordMismatch — новый пароль и подтверждение не совпадают.
// Транспорт: 400 PASSWORD_MISMATCH.
var ErrPasswordMismatch = stderrors.New("password mismatch")

// APIError — единый формат ошибки для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе об ошибке.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// FieldError — ошибка валидации конкретного поля запроса.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResponse — корневой объект ответа на невалидный запрос.
type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ для фронта. Нераспознанные ошибки (включая сбои БД)
// схлопываются в 500 INTERNAL_ERROR без утечки деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := base(err)
	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteValidationErrors пишет 400 с пофилдовым списком ошибок валидации.
func WriteValidationErrors(w http.ResponseWriter, fields []FieldError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(ValidationResponse{Errors: fields})
}

// base — таблица маппинга сентинелов на (HTTP-статус, код, сообщение).
func base(err error) (int, string, string) {
	switch {
	case stderrors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password"
	case stderrors.Is(err, service.ErrEmailNotConfirmed):
		return http.StatusForbidden, "EMAIL_NOT_CONFIRMED", "email is not confirmed"
	case stderrors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "EMAIL_ALREADY_EXISTS", "email already exists"
	case stderrors.Is(err, service.ErrInvalidAuthCode):
		return http.StatusBadRequest, "INVALID_AUTH_CODE", "invalid auth code"
	case stderrors.Is(err, service.ErrAuthCodeExpired):
		return http.StatusBadRequest, "AUTH_CODE_EXPIRED", "auth code expired"
	case stderrors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, "TOKEN_EXPIRED", "token expired"
	case stderrors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, "TOKEN_INVALID", "token invalid"
	case stderrors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case stderrors.Is(err, service.ErrEmailSendFailed):
		return http.StatusInternalServerError, "EMAIL_SERVICE_ERROR", "failed to send email"
	case stderrors.Is(err, rate.ErrRateLimited):
		return http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "too many attempts, try again later"
	case stderrors.Is(err, ErrPasswordMismatch):
		return http.StatusBadRequest, "PASSWORD_MISMATCH", "passwords do not match"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal error"
	}
}
