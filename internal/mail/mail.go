// mail отвечает за доставку одноразовых кодов пользователю.
// Контракт Sender намеренно узкий: ровно три вида писем, по одному на
// каждый тип кода. Продакшен-реализация — Resend (resend.go),
// тестовая — заглушка в тестах сервиса.
package mail

import "context"

// Sender отправляет письма с одноразовыми кодами.
// Реализация должна быть безопасна для конкурентного использования.
type Sender interface {
	// SendConfirmationCode отправляет код подтверждения email после регистрации.
	SendConfirmationCode(ctx context.Context, toEmail, firstName, code string) error
	// SendPasswordResetCode отправляет код сброса пароля.
	SendPasswordResetCode(ctx context.Context, toEmail, firstName, code string) error
	// SendEmailChangeCode отправляет код подтверждения на НОВЫЙ адрес.
	SendEmailChangeCode(ctx context.Context, toEmail, firstName, code string) error
}
