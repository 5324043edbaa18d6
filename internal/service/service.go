// service содержит бизнес-логику auth-сервиса:
// регистрацию/аутентификацию пользователей, жизненный цикл одноразовых
// кодов, выпуск/проверку токенов и работу с хранилищем через интерфейсы
// из пакета storage.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданные хранилище и отправитель писем потокобезопасны.
//   - Ошибки возвращаются сентинелами и далее маппятся
//     транспортом на HTTP-коды (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"auth-api/internal/config"
	"auth-api/internal/mail"
	"auth-api/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Транспорт: 401 INVALID_CREDENTIALS.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailNotConfirmed — вход до подтверждения email.
	// Транспорт: 403 EMAIL_NOT_CONFIRMED.
	ErrEmailNotConfirmed = errors.New("email not confirmed")

	// ErrEmailTaken — e-mail уже занят другим пользователем.
	// Транспорт: 409 EMAIL_ALREADY_EXISTS.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidAuthCode — код не совпадает с последним выпущенным
	// или уже использован. Транспорт: 400 INVALID_AUTH_CODE.
	ErrInvalidAuthCode = errors.New("invalid auth code")

	// ErrAuthCodeExpired — срок действия кода истёк.
	// Транспорт: 400 AUTH_CODE_EXPIRED.
	ErrAuthCodeExpired = errors.New("auth code expired")

	// ErrInvalidToken — токен (access/refresh) некорректен по формату/подписи
	// или не того типа. Транспорт: 401 TOKEN_INVALID.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк.
	// Транспорт: 401 TOKEN_EXPIRED.
	ErrTokenExpired = errors.New("token expired")

	// ErrUnauthorized — предъявленный refresh-токен не активен
	// (отозван конкурентной ротацией/logout) либо субъект токена не совпадает
	// с аутентифицированным пользователем. Транспорт: 401 UNAUTHORIZED.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmailSendFailed — не удалось отправить письмо там, где доставка
	// обязательна (регистрация). Транспорт: 500 EMAIL_SERVICE_ERROR.
	ErrEmailSendFailed = errors.New("email send failed")
)

// Service описывает бизнес-логику auth-сервиса.
type Service struct {
	storage storage.Storage
	mailer  mail.Sender
	cfg     config.AuthConfig
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, mailer mail.Sender, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		mailer:  mailer,
		cfg:     cfg,
	}
}
