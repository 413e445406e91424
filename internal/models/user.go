package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	// Пустой хеш = аккаунт без пароля (social-only), логин по паролю запрещен
	PasswordHash  string   `gorm:"" json:"-"`
	Role          UserRole `gorm:"type:varchar(20);not null" json:"role"`
	Name          string   `json:"name"`
	Blocked       bool     `gorm:"default:false" json:"blocked"`
	BlockedReason string   `json:"blocked_reason,omitempty"`

	// Поля работодателя
	Company  string `json:"company,omitempty"`
	Position string `json:"position,omitempty"`

	// Поля кандидата
	Skills   datatypes.JSON `gorm:"type:jsonb" json:"skills,omitempty"`
	Phone    string         `json:"phone,omitempty"`
	Location string         `json:"location,omitempty"`

	// Relations
	Session *Session `gorm:"foreignKey:UserID" json:"-"`
}

// HasPassword сообщает, может ли пользователь логиниться по паролю
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Session - единственная активная сессия пользователя.
// Храним хеш текущего refresh токена; ротация выполняется как
// compare-and-swap по предыдущему хешу, поэтому гонка двух
// одновременных refresh-запросов разрешается в пользу одного.
type Session struct {
	BaseModel
	UserID           string    `gorm:"not null;uniqueIndex" json:"user_id"`
	RefreshTokenHash string    `gorm:"not null" json:"-"`
	IssuedAt         time.Time `gorm:"not null" json:"issued_at"`
}
