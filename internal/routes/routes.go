package routes

import (
	"net/http"

	"worklink_backend/internal/handlers"
	"worklink_backend/internal/middleware"
	"worklink_backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
// Два корневых дерева: public (без токена, с опциональным пользователем)
// и authed (AuthMiddleware обязателен).
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	userRepo repositories.UserRepository,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")

	public := api.Group("")
	public.Use(middleware.OptionalAuth(userRepo))

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(userRepo))

	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(authed)
		appHandlers.JobHandler.RegisterRoutes(public, authed)
		appHandlers.ApplicationHandler.RegisterRoutes(authed)
	}
}
