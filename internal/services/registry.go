package services

import (
	"worklink_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        AuthService
	UserService        UserService
	JobService         JobService
	ApplicationService ApplicationService
	EmailProvider      email.Provider
}
