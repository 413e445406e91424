package middleware

import (
	"strings"

	"worklink_backend/internal/auth"
	"worklink_backend/internal/logger"
	"worklink_backend/internal/models"
	"worklink_backend/internal/repositories"
	"worklink_backend/pkg/apperrors"
	"worklink_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware проверяет access token и загружает пользователя.
// Пользователь читается из БД на каждый запрос: блокировка действует
// немедленно, не дожидаясь истечения токена. Просроченный токен дает
// отдельный код TOKEN_EXPIRED, чтобы клиент мог молча сделать refresh.
func AuthMiddleware(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, apperrors.ErrAccessTokenRequired)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseAccessToken(tokenStr)
		if err != nil {
			if apperrors.Is(err, auth.ErrTokenExpired) {
				abortWithError(c, apperrors.ErrTokenExpired)
				return
			}
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}

		db := dbFromContext(c)
		user, err := userRepo.FindByID(db, claims.UserID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				// Пользователь удален после выдачи токена
				abortWithError(c, apperrors.ErrInvalidToken)
				return
			}
			logger.CtxWithError(c.Request.Context(), "auth: user lookup failed", err, "user_id", claims.UserID)
			abortWithError(c, apperrors.InternalError(err))
			return
		}

		if user.Blocked {
			abortWithError(c, apperrors.ErrUserBlocked)
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Set("userID", user.ID)
		c.Set("role", string(user.Role))
		c.Set("user", user)
		c.Next()
	}
}

// OptionalAuth подставляет пользователя, если валидный токен есть,
// но не требует его. Невалидный токен просто игнорируется.
func OptionalAuth(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		claims, err := auth.ParseAccessToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.Next()
			return
		}

		db := dbFromContext(c)
		user, err := userRepo.FindByID(db, claims.UserID)
		if err != nil || user.Blocked {
			c.Next()
			return
		}

		c.Set("userID", user.ID)
		c.Set("role", string(user.Role))
		c.Set("user", user)
		c.Next()
	}
}

// RequireRoles пропускает только перечисленные роли.
// Ставится после AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleStr := c.GetString("role")
		if roleStr == "" || !roleSet[models.UserRole(roleStr)] {
			abortWithError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}

// GetUserRole извлекает роль пользователя из контекста
func GetUserRole(c *gin.Context) models.UserRole {
	return models.UserRole(c.GetString("role"))
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	apperrors.HandleError(c, appErr)
	c.Abort()
}

func dbFromContext(c *gin.Context) *gorm.DB {
	val, _ := c.Get(string(contextkeys.DBContextKey))
	db, _ := val.(*gorm.DB)
	return db
}
