package handlers

import (
	"net/mail"
	"strings"

	apierrors "auth-api/internal/errors"
)

// Правила валидации (проверяются до сервисного слоя):
// имена непустые после trim, email разбирается net/mail, пароль >= 8 символов,
// подтверждение пароля обязано совпадать, код — ровно 6 цифр.

const minPasswordLen = 8

type signUpRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r signUpRequest) Validate() []apierrors.FieldError {
	var fields []apierrors.FieldError
	fields = appendRequired(fields, "first_name", r.FirstName)
	fields = appendRequired(fields, "last_name", r.LastName)
	fields = appendEmail(fields, "email", r.Email)
	fields = appendPassword(fields, "password", r.Password)
	if r.Password != r.ConfirmPassword {
		fields = append(fields, apierrors.FieldError{Field: "confirm_password", Message: "passwords do not match"})
	}
	return fields
}

type confirmEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r confirmEmailRequest) Validate() []apierrors.FieldError {
	var fields []apierrors.FieldError
	fields = appendEmail(fields, "email", r.Email)
	fields = appendCode(fields, "code", r.Code)
	return fields
}

type resendConfirmationRequest struct {
	Email string `json:"email"`
}

func (r resendConfirmationRequest) Validate() []apierrors.FieldError {
	return appendEmail(nil, "email", r.Email)
}

type logInRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func (r logInRequest) Validate() []apierrors.FieldError {
	var fields []apierrors.FieldError
	fields = appendEmail(fields, "email", r.Email)
	fields = appendRequired(fields, "password", r.Password)
	return fields
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r forgotPasswordRequest) Validate() []apierrors.FieldError {
	return appendEmail(nil, "email", r.Email)
}

type verifyForgotPasswordRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r verifyForgotPasswordRequest) Validate() []apierrors.FieldError {
	var fields []apierrors.FieldError
	fields = appendEmail(fields, "email", r.Email)
	fields = appendCode(fields, "code", r.Code)
	return fields
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r changePasswordRequest) Validate() []apierrors.FieldError {
	var fields []apierrors.FieldError
	fields = appendRequired(fields, "current_password", r.CurrentPassword)
	fields = appendPassword(fields, "new_password", r.NewPassword)
	return fields
}

type setPasswordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r setPasswordRequest) Validate() []apierrors.FieldError {
	return appendPassword(nil, "new_password", r.NewPassword)
}

type requestEmailChangeRequest struct {
	NewEmail string `json:"new_email"`
}

func (r requestEmailChangeRequest) Validate() []apierrors.FieldError {
	return appendEmail(nil, "new_email", r.NewEmail)
}

type confirmEmailChangeRequest struct {
	NewEmail string `json:"new_email"`
	Code     string `json:"code"`
}

func (r confirmEmailChangeRequest) Validate() []apierrors.FieldError {
	var fields []apierrors.FieldError
	fields = appendEmail(fields, "new_email", r.NewEmail)
	fields = appendCode(fields, "code", r.Code)
	return fields
}

func appendRequired(fields []apierrors.FieldError, name, value string) []apierrors.FieldError {
	if strings.TrimSpace(value) == "" {
		return append(fields, apierrors.FieldError{Field: name, Message: "must not be empty"})
	}
	return fields
}

func appendEmail(fields []apierrors.FieldError, name, value string) []apierrors.FieldError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return append(fields, apierrors.FieldError{Field: name, Message: "must not be empty"})
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return append(fields, apierrors.FieldError{Field: name, Message: "must be a valid email address"})
	}
	return fields
}

func appendPassword(fields []apierrors.FieldError, name, value string) []apierrors.FieldError {
	if len([]rune(value)) < minPasswordLen {
		return append(fields, apierrors.FieldError{Field: name, Message: "must be at least 8 characters"})
	}
	return fields
}

func appendCode(fields []apierrors.FieldError, name, value string) []apierrors.FieldError {
	if len(value) != 6 || strings.IndexFunc(value, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return append(fields, apierrors.FieldError{Field: name, Message: "must be a 6-digit code"})
	}
	return fields
}
