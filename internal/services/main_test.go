package services_test

import (
	"sync"
	"testing"

	"worklink_backend/database"
	"worklink_backend/internal/auth"
	"worklink_backend/internal/config"
	"worklink_backend/internal/email"
	"worklink_backend/internal/models"
	"worklink_backend/internal/repositories"
	"worklink_backend/internal/services"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessTTL = 15
	cfg.JWT.RefreshTTL = 168
	auth.InitJWT(cfg)
}

// newTestDB поднимает чистую in-memory базу на каждый тест.
// Один коннект в пуле, иначе каждый коннект получит свою :memory:.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

type testEnv struct {
	db           *gorm.DB
	authService  services.AuthService
	userService  services.UserService
	jobService   services.JobService
	appService   services.ApplicationService
	emailCatcher *emailCatcher
}

// emailCatcher копит отправленные письма вместо SMTP.
// Отправка идет из горутин сервиса, поэтому нужен мьютекс.
type emailCatcher struct {
	mu   sync.Mutex
	sent []email.Message
}

func (c *emailCatcher) Send(msg *email.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, *msg)
	return nil
}

func (c *emailCatcher) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Message) error {
	return c.Send(msg)
}

func (c *emailCatcher) Validate() error { return nil }
func (c *emailCatcher) Close() error    { return nil }

func (c *emailCatcher) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func (c *emailCatcher) lastTo() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return nil
	}
	return c.sent[len(c.sent)-1].To
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)

	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	jobRepo := repositories.NewJobRepository()
	appRepo := repositories.NewApplicationRepository()
	catcher := &emailCatcher{}

	return &testEnv{
		db:           db,
		authService:  services.NewAuthService(userRepo, sessionRepo, catcher),
		userService:  services.NewUserService(userRepo, sessionRepo),
		jobService:   services.NewJobService(jobRepo, appRepo),
		appService:   services.NewApplicationService(appRepo, jobRepo, userRepo, catcher),
		emailCatcher: catcher,
	}
}

func createUser(t *testing.T, db *gorm.DB, emailAddr string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Email:        emailAddr,
		PasswordHash: hash,
		Role:         role,
		Name:         "Test User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createJob(t *testing.T, db *gorm.DB, employerID string, status models.JobStatus) *models.Job {
	t.Helper()

	job := &models.Job{
		EmployerID: employerID,
		Title:      "Backend Engineer",
		Location:   "Berlin",
		Type:       models.JobTypeFullTime,
		Status:     status,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}
