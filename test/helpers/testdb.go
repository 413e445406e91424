package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"worklink_backend/internal/auth"
	"worklink_backend/internal/models"

	"github.com/stretchr/testify/require"
)

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

var emailSeq atomic.Int64

// UniqueEmail выдает уникальный email, чтобы параллельные тесты
// не конфликтовали на уникальном индексе users.email.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, emailSeq.Add(1))
}

// AuthSession - результат регистрации через API
type AuthSession struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	Password     string
}

type authResponseBody struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// RegisterUser регистрирует пользователя через API и возвращает его сессию
func RegisterUser(t *testing.T, ts *TestServer, role models.UserRole) *AuthSession {
	t.Helper()

	email := UniqueEmail(string(role))
	password := "password123"

	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"name":     "Test " + string(role),
		"role":     string(role),
	}
	if role == models.UserRoleEmployer {
		body["company"] = "Test Company Inc."
	}

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Регистрация должна быть успешной. Ответ: "+resBody)

	var parsed authResponseBody
	require.NoError(t, json.Unmarshal([]byte(resBody), &parsed))
	require.NotEmpty(t, parsed.AccessToken)
	require.NotEmpty(t, parsed.User.ID)

	return &AuthSession{
		AccessToken:  parsed.AccessToken,
		RefreshToken: parsed.RefreshToken,
		UserID:       parsed.User.ID,
		Email:        email,
		Password:     password,
	}
}

// CreateJob создает вакансию через API от имени работодателя и
// возвращает ее ID.
func CreateJob(t *testing.T, ts *TestServer, employerToken, title string) string {
	t.Helper()

	body := map[string]interface{}{
		"title":       title,
		"description": "Test description",
		"location":    "Almaty",
		"type":        "full_time",
		"experience":  "mid",
	}

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", employerToken, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Создание вакансии должно быть успешным. Ответ: "+resBody)

	var parsed struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &parsed))
	require.NotEmpty(t, parsed.ID)
	return parsed.ID
}

// SeedAdmin создает админа напрямую в БД (регистрация через API
// выдает только employer/candidate) и логинит его через API.
func SeedAdmin(t *testing.T, ts *TestServer) *AuthSession {
	t.Helper()

	email := UniqueEmail("admin")
	password := "admin-password-123"

	hash := mustHashPassword(t, password)
	admin := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Name:         "Test Admin",
	}
	require.NoError(t, ts.DB.Create(admin).Error)

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин админа должен быть успешным. Ответ: "+resBody)

	var parsed authResponseBody
	require.NoError(t, json.Unmarshal([]byte(resBody), &parsed))

	return &AuthSession{
		AccessToken:  parsed.AccessToken,
		RefreshToken: parsed.RefreshToken,
		UserID:       admin.ID,
		Email:        email,
		Password:     password,
	}
}
