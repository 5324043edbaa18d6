package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender — реализация Sender поверх Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender создаёт отправителя с заданным API-ключом и адресом From.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

var _ Sender = (*ResendSender)(nil)

// SendConfirmationCode отправляет код подтверждения email после регистрации.
func (s *ResendSender) SendConfirmationCode(ctx context.Context, toEmail, firstName, code string) error {
	const op = "mail.resend.SendConfirmationCode"

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your email confirmation code is <strong>%s</strong>.</p><p>The code expires shortly, so please use it soon.</p>",
		firstName, code,
	)

	if err := s.send(ctx, toEmail, "Confirm your email", body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SendPasswordResetCode отправляет код сброса пароля.
func (s *ResendSender) SendPasswordResetCode(ctx context.Context, toEmail, firstName, code string) error {
	const op = "mail.resend.SendPasswordResetCode"

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your password reset code is <strong>%s</strong>.</p><p>If you did not request a reset, you can ignore this email.</p>",
		firstName, code,
	)

	if err := s.send(ctx, toEmail, "Reset your password", body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SendEmailChangeCode отправляет код подтверждения на новый адрес.
func (s *ResendSender) SendEmailChangeCode(ctx context.Context, toEmail, firstName, code string) error {
	const op = "mail.resend.SendEmailChangeCode"

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your email change confirmation code is <strong>%s</strong>.</p><p>If you did not request this change, you can ignore this email.</p>",
		firstName, code,
	)

	if err := s.send(ctx, toEmail, "Confirm your new email", body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *ResendSender) send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	return err
}
