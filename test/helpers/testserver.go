package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"worklink_backend/database"
	"worklink_backend/internal/app"
	"worklink_backend/internal/auth"
	"worklink_backend/internal/config"
	"worklink_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestServer - полный HTTP-стек приложения поверх тестовой БД
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

// NewTestServer поднимает приложение целиком: при заданном TEST_DATABASE_URL
// используется postgres, иначе in-memory sqlite. Схема накатывается через
// AutoMigrate, роутер собирается тем же SetupRouter, что и в проде.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger.Init("test")

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "integration-test-access-secret"
	cfg.JWT.RefreshSecret = "integration-test-refresh-secret"
	cfg.JWT.AccessTTL = 15
	cfg.JWT.RefreshTTL = 168
	auth.InitJWT(cfg)

	db := openTestDB(t)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate для тестовой БД не прошел: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		DB:     db,
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	}

	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			t.Fatalf("Не удалось подключиться к тестовой БД (%s): %v", dsn, err)
		}
		return db
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormCfg)
	if err != nil {
		t.Fatalf("Не удалось открыть in-memory sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Не удалось получить *sql.DB из GORM: %v", err)
	}
	// Один коннект в пуле, иначе каждый коннект получит отдельную :memory:
	sqlDB.SetMaxOpenConns(1)
	return db
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// SendRequest отправляет JSON-запрос на тестовый сервер и возвращает
// ответ вместе с прочитанным телом.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}

	return res, string(resBody)
}
