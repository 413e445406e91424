package services_test

import (
	"testing"
	"time"

	"worklink_backend/internal/models"
	"worklink_backend/internal/services/dto"
	"worklink_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerReq(emailAddr string, role models.UserRole) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:    emailAddr,
		Password: "password123",
		Name:     "Test User",
		Role:     role,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.authService.Register(env.db, registerReq("cand@test.com", models.UserRoleCandidate))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "cand@test.com", resp.User.Email)

	// Хеш пароля не утекает в БД-ответе, сессия создана
	var sessionCount int64
	env.db.Model(&models.Session{}).Where("user_id = ?", resp.User.ID).Count(&sessionCount)
	assert.Equal(t, int64(1), sessionCount)

	loginResp, err := env.authService.Login(env.db, &dto.LoginRequest{
		Email:    "cand@test.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, loginResp.AccessToken)

	// Приветственное письмо уходит асинхронно
	assert.Eventually(t, func() bool {
		return env.emailCatcher.count() == 1
	}, time.Second, 10*time.Millisecond, "новый пользователь должен получить приветственное письмо")
	assert.Equal(t, []string{"cand@test.com"}, env.emailCatcher.lastTo())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authService.Register(env.db, registerReq("dup@test.com", models.UserRoleCandidate))
	require.NoError(t, err)

	_, err = env.authService.Register(env.db, registerReq("dup@test.com", models.UserRoleEmployer))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	req := registerReq("weak@test.com", models.UserRoleCandidate)
	req.Password = "12345"
	_, err := env.authService.Register(env.db, req)
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

// Неверный пароль, несуществующий email и аккаунт без пароля дают
// один и тот же ответ.
func TestLoginUniformFailures(t *testing.T) {
	env := newTestEnv(t)
	createUser(t, env.db, "user@test.com", models.UserRoleCandidate)

	_, err := env.authService.Login(env.db, &dto.LoginRequest{
		Email: "user@test.com", Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = env.authService.Login(env.db, &dto.LoginRequest{
		Email: "nobody@test.com", Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// social-only аккаунт: пустой хеш
	passwordless := &models.User{Email: "social@test.com", Role: models.UserRoleCandidate}
	require.NoError(t, env.db.Create(passwordless).Error)

	_, err = env.authService.Login(env.db, &dto.LoginRequest{
		Email: "social@test.com", Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginBlocked(t *testing.T) {
	env := newTestEnv(t)
	user := createUser(t, env.db, "blocked@test.com", models.UserRoleCandidate)
	require.NoError(t, env.db.Model(user).Updates(map[string]interface{}{
		"blocked": true, "blocked_reason": "spam",
	}).Error)

	// Блокировка не отличима от неверных кредов на логин-флоу
	_, err := env.authService.Login(env.db, &dto.LoginRequest{
		Email: "blocked@test.com", Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshRotation(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.authService.Register(env.db, registerReq("rot@test.com", models.UserRoleCandidate))
	require.NoError(t, err)

	second, err := env.authService.Refresh(env.db, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Старый refresh уже ротирован - повторное предъявление отклоняется
	_, err = env.authService.Refresh(env.db, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// Новый продолжает работать
	third, err := env.authService.Refresh(env.db, second.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, third.AccessToken)
}

func TestRefreshRejectsGarbageAndAccessToken(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.authService.Register(env.db, registerReq("mix@test.com", models.UserRoleCandidate))
	require.NoError(t, err)

	_, err = env.authService.Refresh(env.db, "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// Access token подписан другим секретом и как refresh не проходит
	_, err = env.authService.Refresh(env.db, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRefreshBlockedUser(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.authService.Register(env.db, registerReq("rblock@test.com", models.UserRoleCandidate))
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("blocked", true).Error)

	// Заблокированный аккаунт на refresh-флоу выглядит как
	// невалидный токен, а не как отдельное состояние
	_, err = env.authService.Refresh(env.db, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.authService.Register(env.db, registerReq("out@test.com", models.UserRoleCandidate))
	require.NoError(t, err)

	require.NoError(t, env.authService.Logout(env.db, resp.RefreshToken))

	// Сессия снята - refresh мертв
	_, err = env.authService.Refresh(env.db, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// Повторный logout не ошибка
	require.NoError(t, env.authService.Logout(env.db, resp.RefreshToken))
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.authService.Register(env.db, registerReq("chp@test.com", models.UserRoleCandidate))
	require.NoError(t, err)

	err = env.authService.ChangePassword(env.db, resp.User.ID, "wrong", "newpassword1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	require.NoError(t, env.authService.ChangePassword(env.db, resp.User.ID, "password123", "newpassword1"))

	// Старый refresh перестает работать после смены пароля
	_, err = env.authService.Refresh(env.db, resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = env.authService.Login(env.db, &dto.LoginRequest{
		Email: "chp@test.com", Password: "newpassword1",
	})
	require.NoError(t, err)
}
