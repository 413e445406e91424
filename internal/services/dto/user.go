package dto

import (
	"time"

	"worklink_backend/internal/models"

	"gorm.io/datatypes"
)

// UpdateProfileRequest - частичное обновление профиля.
// nil-поле означает "не трогать"; только перечисленные здесь поля
// вообще могут быть изменены через API.
type UpdateProfileRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Company  *string  `json:"company,omitempty" validate:"omitempty,max=200"`
	Position *string  `json:"position,omitempty" validate:"omitempty,max=100"`
	Skills   []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,min=1,max=50"`
	Phone    *string  `json:"phone,omitempty" validate:"omitempty,e164"`
	Location *string  `json:"location,omitempty" validate:"omitempty,max=200"`
}

// ChangePasswordRequest - смена пароля текущего пользователя
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// BlockUserRequest - блокировка пользователя администратором
type BlockUserRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// UserListRequest - фильтры списка пользователей (admin)
type UserListRequest struct {
	Role    string `form:"role" validate:"omitempty,is-user-role"`
	Blocked *bool  `form:"blocked"`
	Search  string `form:"search" validate:"omitempty,max=100"`
}

// UserResponse - полный профиль пользователя
type UserResponse struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Role          models.UserRole `json:"role"`
	Blocked       bool            `json:"blocked"`
	BlockedReason string          `json:"blocked_reason,omitempty"`
	Company       string          `json:"company,omitempty"`
	Position      string          `json:"position,omitempty"`
	Skills        datatypes.JSON  `json:"skills,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Location      string          `json:"location,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// UserListResponse - страница пользователей
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

// NewUserResponse собирает UserResponse из модели
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		Blocked:       u.Blocked,
		BlockedReason: u.BlockedReason,
		Company:       u.Company,
		Position:      u.Position,
		Skills:        u.Skills,
		Phone:         u.Phone,
		Location:      u.Location,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// NewUserListResponse собирает страницу пользователей
func NewUserListResponse(users []models.User, page, limit int, total int64) UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return UserListResponse{
		Users:      out,
		Pagination: NewPagination(page, limit, total),
	}
}
