package services

import (
	"worklink_backend/internal/auth"
	"worklink_backend/internal/email"
	"worklink_backend/internal/logger"
	"worklink_backend/internal/models"
	"worklink_backend/internal/repositories"
	"worklink_backend/internal/services/dto"
	"worklink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	ChangePassword(db *gorm.DB, userID, currentPassword, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	sessionRepo   repositories.SessionRepository
	emailProvider email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		emailProvider: emailProvider,
	}
}

// Register - регистрация нового пользователя.
// Сразу выдает пару токенов, как и Login.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Name:         req.Name,
		Company:      req.Company,
		Position:     req.Position,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendWelcomeEmail(user)

	return s.issueTokens(db, user)
}

// sendWelcomeEmail шлет приветственное письмо. Лучшая попытка:
// сбой почты не ломает регистрацию.
func (s *AuthServiceImpl) sendWelcomeEmail(user *models.User) {
	go func() {
		err := s.emailProvider.SendWithTemplate(
			email.TemplateWelcome,
			email.TemplateData{
				"Name": user.Name,
				"Role": string(user.Role),
			},
			&email.Message{
				To:      []string{user.Email},
				Subject: "Welcome to WorkLink",
			},
		)
		if err != nil {
			logger.WithError(err).Warn("failed to send welcome email", "user_id", user.ID)
		}
	}()
}

// Login - аутентификация по email и паролю.
// "Нет такого email", "аккаунт без пароля", "пароль не подошел" и
// "аккаунт заблокирован" дают одинаковый ответ: логин-флоу не
// раскрывает состояние аккаунта. Отдельный ответ о блокировке
// получают только уже аутентифицированные сессии (middleware).
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.HasPassword() {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Blocked {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(db, user)
}

// Refresh - ротация пары токенов по refresh токену.
// Сессия хранит хеш последнего выданного refresh токена: предыявление
// старого (уже ротированного) токена дает ErrInvalidToken. Две
// параллельные ротации разрешаются через compare-and-swap в репозитории.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := auth.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, claims.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	// Для заблокированного - тот же ответ, что и для невалидного
	// токена: refresh-флоу не раскрывает состояние аккаунта
	if user.Blocked {
		return nil, apperrors.ErrInvalidToken
	}

	pair, err := auth.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	oldHash := auth.HashRefreshToken(refreshToken)
	newHash := auth.HashRefreshToken(pair.RefreshToken)

	if err := s.sessionRepo.Rotate(db, user.ID, oldHash, newHash); err != nil {
		if apperrors.Is(err, repositories.ErrSessionNotFound) {
			// Токен подписан нами, но сессия уже ротирована или снята
			logger.Warn("refresh with stale token", "user_id", user.ID)
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         dto.NewUserDTO(user),
	}, nil
}

// Logout - снятие сессии по refresh токену.
// Уже снятая сессия не считается ошибкой.
func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	claims, err := auth.ParseRefreshToken(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	if err := s.sessionRepo.DeleteByUserID(db, claims.UserID); err != nil {
		if apperrors.Is(err, repositories.ErrSessionNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// ChangePassword - смена пароля текущего пользователя.
// После смены сессия снимается: refresh токены, выданные под старым
// паролем, перестают работать.
func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !user.HasPassword() || !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.sessionRepo.DeleteByUserID(db, userID); err != nil &&
		!apperrors.Is(err, repositories.ErrSessionNotFound) {
		logger.WithError(err).Warn("failed to drop session after password change", "user_id", userID)
	}
	return nil
}

// issueTokens выдает пару токенов и перезаписывает сессию пользователя
func (s *AuthServiceImpl) issueTokens(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	pair, err := auth.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	hash := auth.HashRefreshToken(pair.RefreshToken)
	if err := s.sessionRepo.Replace(db, user.ID, hash); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         dto.NewUserDTO(user),
	}, nil
}
