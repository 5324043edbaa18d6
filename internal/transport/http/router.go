package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"auth-api/internal/transport/http/handlers"
	"auth-api/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(h *handlers.Handlers, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// Публичные эндпойнты.
	r.Post("/auth/sign-up", h.SignUp)
	r.Post("/auth/confirm-email", h.ConfirmEmail)
	r.Post("/auth/resend-confirmation", h.ResendConfirmation)
	r.Post("/auth/log-in", h.LogIn)
	r.Post("/auth/log-out", h.LogOut)
	r.Post("/auth/refresh", h.Refresh)
	r.Post("/auth/forgot-password", h.ForgotPassword)
	r.Post("/auth/verify-forgot-password", h.VerifyForgotPassword)

	// Требуют валидного access-токена в cookie.
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.Authenticate(h.Service()))

		pr.Get("/auth/me", h.Me)
		pr.Post("/auth/request-email-change", h.RequestEmailChange)
		pr.Post("/auth/confirm-email-change", h.ConfirmEmailChange)
		pr.Post("/auth/change-password", h.ChangePassword)
		pr.Post("/auth/set-password", h.SetPassword)
	})
}
