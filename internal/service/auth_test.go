package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"auth-api/internal/models"
	"auth-api/internal/storage"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fmtWrap - оборачивает ошибку из storage, имитируя fmt.Errorf("%w").
func fmtWrap(err error) error { return fmt.Errorf("wrapped: %w", err) }

func confirmedUser(email, password string) *models.User {
	hash, err := hashPassword(password)
	if err != nil {
		panic(err)
	}

	now := time.Now().UTC()
	return &models.User{
		ID:             uuid.New(),
		FirstName:      "Ivan",
		LastName:       "Petrov",
		Email:          email,
		PasswordHash:   hash,
		EmailConfirmed: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestSignUp_Success_SendsCodeMatchingStoredDigest(t *testing.T) {
	svc, mockSt, mockSender, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ctx := context.Background()

	var savedUser *models.User
	var savedCode *models.AuthCode
	var sentCode, sentTo string

	mockSt.EXPECT().
		UserByEmail(gomock.Any(), "new@example.com").
		Return(nil, fmtWrap(storage.ErrNotFound))
	mockSt.EXPECT().
		SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			savedUser = u
			return nil
		})
	mockSt.EXPECT().
		SaveAuthCode(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.AuthCode) error {
			savedCode = c
			return nil
		})
	mockSender.EXPECT().
		SendConfirmationCode(gomock.Any(), "new@example.com", "Ivan", gomock.Any()).
		DoAndReturn(func(_ context.Context, to, _, code string) error {
			sentTo = to
			sentCode = code
			return nil
		})

	user, err := svc.SignUp(ctx, SignUpInput{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     "  NEW@Example.COM ",
		Password:  "s3cret-password",
	})
	require.NoError(t, err)

	// Email нормализован, пароль захэширован (plaintext не хранится).
	require.Equal(t, "new@example.com", user.Email)
	require.Equal(t, savedUser.ID, user.ID)
	require.NotEqual(t, "s3cret-password", user.PasswordHash)
	require.True(t, checkPassword(user.PasswordHash, "s3cret-password"))
	require.False(t, user.EmailConfirmed)

	// Отправленный код соответствует сохранённому дайджесту.
	require.Equal(t, "new@example.com", sentTo)
	require.Len(t, sentCode, 6)
	require.Equal(t, models.AuthCodeEmailConfirmation, savedCode.CodeType)
	require.Equal(t, savedUser.ID, savedCode.UserID)
	require.True(t, verifyAuthCode(sentCode, savedCode.CodeHash))
	require.WithinDuration(t, savedCode.CreatedAt.Add(svc.cfg.AuthCodeTTL), savedCode.ExpiresAt, time.Second)
}

func TestSignUp_EmailTaken(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockSt.EXPECT().
		UserByEmail(gomock.Any(), "taken@example.com").
		Return(confirmedUser("taken@example.com", "x"), nil)

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "taken@example.com",
		Password: "whatever-pass",
	})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUp_SaveRace_UniqueViolation(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockSt.EXPECT().
		UserByEmail(gomock.Any(), gomock.Any()).
		Return(nil, fmtWrap(storage.ErrNotFound))
	mockSt.EXPECT().
		SaveUser(gomock.Any(), gomock.Any()).
		Return(fmtWrap(storage.ErrAlreadyExists))

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "race@example.com",
		Password: "whatever-pass",
	})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUp_MailFailure_IsFatal(t *testing.T) {
	svc, mockSt, mockSender, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockSt.EXPECT().
		UserByEmail(gomock.Any(), gomock.Any()).
		Return(nil, fmtWrap(storage.ErrNotFound))
	mockSt.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil)
	mockSt.EXPECT().SaveAuthCode(gomock.Any(), gomock.Any()).Return(nil)
	mockSender.EXPECT().
		SendConfirmationCode(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("resend: 503"))

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "new@example.com",
		Password: "whatever-pass",
	})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmailSendFailed)
}

func TestResendConfirmation_UnknownEmail_Generic(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockSt.EXPECT().
		UserByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, fmtWrap(storage.ErrNotFound))

	require.NoError(t, svc.ResendConfirmation(context.Background(), "ghost@example.com"))
}

func TestResendConfirmation_AlreadyConfirmed_NoCode(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockSt.EXPECT().
		UserByEmail(gomock.Any(), "done@example.com").
		Return(confirmedUser("done@example.com", "x"), nil)

	require.NoError(t, svc.ResendConfirmation(context.Background(), "done@example.com"))
}

func TestResendConfirmation_InvalidatesOldCodes_MailErrorSwallowed(t *testing.T) {
	svc, mockSt, mockSender, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	user := confirmedUser("pending@example.com", "x")
	user.EmailConfirmed = false

	gomock.InOrder(
		mockSt.EXPECT().
			UserByEmail(gomock.Any(), "pending@example.com").
			Return(user, nil),
		mockSt.EXPECT().
			InvalidateAuthCodes(gomock.Any(), user.ID, models.AuthCodeEmailConfirmation).
			Return(nil),
		mockSt.EXPECT().SaveAuthCode(gomock.Any(), gomock.Any()).Return(nil),
		mockSender.EXPECT().
			SendConfirmationCode(gomock.Any(), user.Email, user.FirstName, gomock.Any()).
			Return(errors.New("resend: timeout")),
	)

	require.NoError(t, svc.ResendConfirmation(context.Background(), "pending@example.com"))
}

func TestConfirmEmail_Success(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	user := confirmedUser("pending@example.com", "x")
	user.EmailConfirmed = false

	code := "428517"
	authCode := &models.AuthCode{
		ID:        uuid.New(),
		UserID:    user.ID,
		CodeHash:  hashAuthCode(code),
		CodeType:  models.AuthCodeEmailConfirmation,
		ExpiresAt: time.Now().UTC().Add(5 * time.Minute),
		CreatedAt: time.Now().UTC(),
	}

	mockSt.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)
	mockSt.EXPECT().
		LatestAuthCode(gomock.Any(), user.ID, models.AuthCodeEmailConfirmation).
		Return(authCode, nil)
	mockSt.EXPECT().ConfirmUserEmail(gomock.Any(), user.ID, authCode.ID).Return(nil)

	require.NoError(t, svc.ConfirmEmail(context.Background(), user.Email, code))
}

func TestConfirmEmail_AlreadyConfirmed_Idempotent(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockSt.EXPECT().
		UserByEmail(gomock.Any(), "done@example.com").
		Return(confirmedUser("done@example.com", "x"), nil)

	require.NoError(t, svc.ConfirmEmail(context.Background(), "done@example.com", "000000"))
}

func TestConfirmEmail_WrongCode(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	user := confirmedUser("pending@example.com", "x")
	user.EmailConfirmed = false

	mockSt.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)
	mockSt.EXPECT().
		LatestAuthCode(gomock.Any(), user.ID, models.AuthCodeEmailConfirmation).
		Return(&models.AuthCode{
			ID:        uuid.New(),
			UserID:    user.ID,
			CodeHash:  hashAuthCode("111111"),
			CodeType:  models.AuthCodeEmailConfirmation,
			ExpiresAt: time.Now().UTC().Add(5 * time.Minute),
		}, nil)

	err := svc.ConfirmEmail(context.Background(), user.Email, "222222")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidAuthCode)
}

func TestConfirmEmail_ExpiredCode(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	user := confirmedUser("pending@example.com", "x")
	user.EmailConfirmed = false

	// Код верный, но просрочен: ошибка различает expiry и mismatch.
	mockSt.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)
	mockSt.EXPECT().
		LatestAuthCode(gomock.Any(), user.ID, models.AuthCodeEmailConfirmation).
		Return(&models.AuthCode{
			ID:        uuid.New(),
			UserID:    user.ID,
			CodeHash:  hashAuthCode("111111"),
			CodeType:  models.AuthCodeEmailConfirmation,
			ExpiresAt: time.Now().UTC().Add(-time.Minute),
		}, nil)

	err := svc.ConfirmEmail(context.Background(), user.Email, "111111")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAuthCodeExpired)
}

func TestConfirmEmail_NoPendingCode(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	user := confirmedUser("pending@example.com", "x")
	user.EmailConfirmed = false

	mockSt.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)
	mockSt.EXPECT().
		LatestAuthCode(gomock.Any(), user.ID, models.AuthCodeEmailConfirmation).
		Return(nil, fmtWrap(storage.ErrNotFound))

	err := svc.ConfirmEmail(context.Background(), user.Email, "111111")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidAuthCode)
}

func TestLogin_Success_IssuesSession(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	user := confirmedUser("user@example.com", "s3cret-password")

	var saved *models.RefreshToken
	mockSt.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(user, nil)
	mockSt.EXPECT().
		SaveRefreshToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rt *models.RefreshToken) error {
			saved = rt
			return nil
		})

	session, err := svc.Login(context.Background(), "User@Example.com", "s3cret-password", true)
	require.NoError(t, err)

	require.Equal(t, user, session.User)
	require.True(t, session.RememberMe)
	require.NotEmpty(t, session.AccessToken)
	require.NotEmpty(t, session.RefreshToken)

	// Access-токен валиден и несёт субъект/email пользователя.
	uid, email, err := svc.ValidateAccessToken(session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)
	require.Equal(t, user.Email, email)

	// В БД ушёл хэш jti нового refresh-токена, не сам токен.
	claims, err := svc.parseRefreshToken(session.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, refreshTokenHash(claims.ID), saved.TokenHash)
	require.Equal(t, user.ID, saved.UserID)
	require.WithinDuration(t, saved.CreatedAt.Add(svc.cfg.RefreshTokenTTL), saved.ExpiresAt, time.Second)
	require.False(t, saved.Revoked)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockSt.EXPECT().
		UserByEmail(gomock.Any(), "user@example.com").
		Return(confirmedUser("user@example.com", "correct-password"), nil)

	_, err := svc.Login(context.Background(), "user@example.com", "wrong-password", false)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	mockSt.EXPECT().
		UserByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, fmtWrap(storage.ErrNotFound))

	_, err := svc.Login(context.Background(), "ghost@example.com", "any-password", false)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_EmailNotConfirmed_EvenWithCorrectPassword(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	user := confirmedUser("pending@example.com", "s3cret-password")
	user.EmailConfirmed = false

	mockSt.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), user.Email, "s3cret-password", false)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmailNotConfirmed)
}

func TestRefresh_Success_RotatesAndInheritsRememberMe(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	user := confirmedUser("user@example.com", "x")
	now := time.Now().UTC()

	oldToken, oldJTI, err := svc.generateRefreshToken(user.ID, true, now)
	require.NoError(t, err)

	var oldHash string
	var next *models.RefreshToken
	mockSt.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	mockSt.EXPECT().
		RotateRefreshToken(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, old string, n *models.RefreshToken) (bool, error) {
			oldHash = old
			next = n
			return true, nil
		})

	session, err := svc.Refresh(context.Background(), oldToken)
	require.NoError(t, err)

	require.Equal(t, refreshTokenHash(oldJTI), oldHash)
	require.True(t, session.RememberMe)
	require.NotEqual(t, oldToken, session.RefreshToken)

	newClaims, err := svc.parseRefreshToken(session.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, oldJTI, newClaims.ID)
	require.Equal(t, refreshTokenHash(newClaims.ID), next.TokenHash)
	require.True(t, newClaims.RememberMe)
}

func TestRefresh_LostRace_ReturnsUnauthorized(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	user := confirmedUser("user@example.com", "x")
	token, _, err := svc.generateRefreshToken(user.ID, false, time.Now().UTC())
	require.NoError(t, err)

	mockSt.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)
	mockSt.EXPECT().
		RotateRefreshToken(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).
		Return(false, nil)

	_, err = svc.Refresh(context.Background(), token)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_UserGone_ReturnsUnauthorized(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	token, _, err := svc.generateRefreshToken(uid, false, time.Now().UTC())
	require.NoError(t, err)

	mockSt.EXPECT().UserByID(gomock.Any(), uid).Return(nil, fmtWrap(storage.ErrNotFound))

	_, err = svc.Refresh(context.Background(), token)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogout_RevokesPresentedToken(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	token, jti, err := svc.generateRefreshToken(uid, false, time.Now().UTC())
	require.NoError(t, err)

	mockSt.EXPECT().
		RevokeRefreshToken(gomock.Any(), refreshTokenHash(jti)).
		Return(true, nil)

	svc.Logout(context.Background(), token)
}

func TestLogout_GarbageOrEmptyToken_NoStorageCalls(t *testing.T) {
	svc, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	svc.Logout(context.Background(), "")
	svc.Logout(context.Background(), "not-a-jwt")
}

func TestLogout_StorageError_Swallowed(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	token, _, err := svc.generateRefreshToken(uuid.New(), false, time.Now().UTC())
	require.NoError(t, err)

	mockSt.EXPECT().
		RevokeRefreshToken(gomock.Any(), gomock.Any()).
		Return(false, errors.New("db down"))

	svc.Logout(context.Background(), token)
}

func TestCurrentUser(t *testing.T) {
	svc, mockSt, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	user := confirmedUser("user@example.com", "x")

	mockSt.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)

	got, err := svc.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user, got)

	mockSt.EXPECT().UserByID(gomock.Any(), gomock.Any()).Return(nil, fmtWrap(storage.ErrNotFound))

	_, err = svc.CurrentUser(context.Background(), uuid.New())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnauthorized)
}
