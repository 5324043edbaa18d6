package handlers

import (
	"encoding/json"
	"net/http"

	"auth-api/internal/config"
	"auth-api/internal/rate"
	"auth-api/internal/service"
)

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	svc     *service.Service
	limiter *rate.Limiter // может быть nil, если троттлинг не сконфигурирован
	cookies CookieWriter
}

func New(svc *service.Service, limiter *rate.Limiter, authCfg config.AuthConfig, cookieCfg config.CookieConfig) *Handlers {
	return &Handlers{
		svc:     svc,
		limiter: limiter,
		cookies: NewCookieWriter(cookieCfg, authCfg.AccessTokenTTL, authCfg.RefreshTokenTTL),
	}
}

// Service возвращает сервисный слой (нужен роутеру для auth-мидлвара).
func (h *Handlers) Service() *service.Service { return h.svc }

// messageResponse — единообразное тело для ответов без данных.
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
