package handlers

import (
	"net/http"
	"time"

	"auth-api/internal/config"
	"auth-api/internal/models"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"

	// refresh-cookie отдаётся только на /auth — единственный путь,
	// где она нужна (refresh/logout/смена пароля).
	refreshCookiePath = "/auth"
)

// CookieWriter собирает auth-cookie с атрибутами из конфигурации.
type CookieWriter struct {
	cfg        config.CookieConfig
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCookieWriter(cfg config.CookieConfig, accessTTL, refreshTTL time.Duration) CookieWriter {
	return CookieWriter{
		cfg:        cfg,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// SetSession выставляет обе auth-cookie.
// refresh-cookie персистентна только при remember_me, иначе сессионная
// (без Max-Age — живёт до закрытия браузера).
func (c CookieWriter) SetSession(w http.ResponseWriter, session *models.Session) {
	c.SetAccessToken(w, session.AccessToken)

	refresh := &http.Cookie{
		Name:     refreshCookie,
		Value:    session.RefreshToken,
		Path:     refreshCookiePath,
		Domain:   c.cfg.Domain,
		HttpOnly: true,
		Secure:   c.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	if session.RememberMe {
		refresh.MaxAge = int(c.refreshTTL.Seconds())
	}

	http.SetCookie(w, refresh)
}

// SetAccessToken выставляет только access-cookie (подтверждение смены email).
func (c CookieWriter) SetAccessToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookie,
		Value:    token,
		Path:     "/",
		Domain:   c.cfg.Domain,
		HttpOnly: true,
		Secure:   c.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(c.accessTTL.Seconds()),
	})
}

// Clear сбрасывает обе auth-cookie. Работает и без активной сессии.
func (c CookieWriter) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookie,
		Value:    "",
		Path:     "/",
		Domain:   c.cfg.Domain,
		HttpOnly: true,
		Secure:   c.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     refreshCookiePath,
		Domain:   c.cfg.Domain,
		HttpOnly: true,
		Secure:   c.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}
