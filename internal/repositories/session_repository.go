package repositories

import (
	"errors"
	"time"

	"worklink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	// или CAS-ротация не совпала по хешу
	ErrSessionNotFound = errors.New("session not found")
)

// SessionRepository определяет операции над сессией пользователя.
// У пользователя одна активная сессия (unique index по user_id):
// каждый login перезаписывает ее, каждый refresh ротирует хеш.
type SessionRepository interface {
	// Replace создает или перезаписывает сессию пользователя (login)
	Replace(db *gorm.DB, userID, refreshTokenHash string) error

	// Rotate заменяет хеш refresh токена по схеме compare-and-swap:
	// UPDATE проходит только если в строке все еще лежит oldHash.
	// Проигравший гонку refresh получает ErrSessionNotFound.
	Rotate(db *gorm.DB, userID, oldHash, newHash string) error

	// DeleteByUserID удаляет сессию (logout, блокировка)
	DeleteByUserID(db *gorm.DB, userID string) error
}

type sessionRepository struct{}

// NewSessionRepository создает новый экземпляр SessionRepository
func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Replace(db *gorm.DB, userID, refreshTokenHash string) error {
	now := time.Now()

	result := db.Model(&models.Session{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token_hash": refreshTokenHash,
			"issued_at":          now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	session := &models.Session{
		UserID:           userID,
		RefreshTokenHash: refreshTokenHash,
		IssuedAt:         now,
	}
	return db.Create(session).Error
}

func (r *sessionRepository) Rotate(db *gorm.DB, userID, oldHash, newHash string) error {
	result := db.Model(&models.Session{}).
		Where("user_id = ? AND refresh_token_hash = ?", userID, oldHash).
		Updates(map[string]interface{}{
			"refresh_token_hash": newHash,
			"issued_at":          time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Либо сессии нет, либо токен уже ротирован конкурентным запросом
		return ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepository) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}
