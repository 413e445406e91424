package services

import (
	"encoding/json"

	"worklink_backend/internal/models"
	"worklink_backend/internal/repositories"
	"worklink_backend/internal/services/dto"
	"worklink_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListUsers(db *gorm.DB, req *dto.UserListRequest, page, pageSize int) (*dto.UserListResponse, error)
	BlockUser(db *gorm.DB, adminID, targetID, reason string) error
	UnblockUser(db *gorm.DB, adminID, targetID string) error
	DeleteUser(db *gorm.DB, adminID, targetID string) error
}

type UserServiceImpl struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
) UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// GetProfile - профиль пользователя по ID
func (s *UserServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile - частичное обновление профиля.
// Меняются только поля, перечисленные в запросе; email, роль и
// признак блокировки через эту операцию недоступны.
func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Company != nil {
		user.Company = *req.Company
	}
	if req.Position != nil {
		user.Position = *req.Position
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Skills != nil {
		raw, err := json.Marshal(req.Skills)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.Skills = datatypes.JSON(raw)
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ListUsers - постраничный список пользователей для администратора
func (s *UserServiceImpl) ListUsers(db *gorm.DB, req *dto.UserListRequest, page, pageSize int) (*dto.UserListResponse, error) {
	filter := repositories.UserFilter{
		Role:     models.UserRole(req.Role),
		Blocked:  req.Blocked,
		Search:   req.Search,
		Page:     page,
		PageSize: pageSize,
	}

	users, total, err := s.userRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserListResponse(users, page, pageSize, total)
	return &resp, nil
}

// BlockUser - блокировка пользователя администратором.
// Сессия снимается сразу: refresh заблокированного больше не работает.
func (s *UserServiceImpl) BlockUser(db *gorm.DB, adminID, targetID, reason string) error {
	if adminID == targetID {
		return apperrors.ErrCannotModifySelf
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.SetBlocked(tx, targetID, true, reason); err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}
		if err := s.sessionRepo.DeleteByUserID(tx, targetID); err != nil &&
			!apperrors.Is(err, repositories.ErrSessionNotFound) {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

// UnblockUser - снятие блокировки
func (s *UserServiceImpl) UnblockUser(db *gorm.DB, adminID, targetID string) error {
	if adminID == targetID {
		return apperrors.ErrCannotModifySelf
	}

	if err := s.userRepo.SetBlocked(db, targetID, false, ""); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// DeleteUser - удаление пользователя вместе с его данными.
// Вакансии работодателя и отклики кандидата уходят в той же транзакции.
func (s *UserServiceImpl) DeleteUser(db *gorm.DB, adminID, targetID string) error {
	if adminID == targetID {
		return apperrors.ErrCannotModifySelf
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("candidate_id = ? OR employer_id = ?", targetID, targetID).
			Delete(&models.Application{}).Error; err != nil {
			return apperrors.InternalError(err)
		}
		if err := tx.Where("employer_id = ?", targetID).
			Delete(&models.Job{}).Error; err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.sessionRepo.DeleteByUserID(tx, targetID); err != nil &&
			!apperrors.Is(err, repositories.ErrSessionNotFound) {
			return apperrors.InternalError(err)
		}
		if err := s.userRepo.Delete(tx, targetID); err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}
		return nil
	})
}
