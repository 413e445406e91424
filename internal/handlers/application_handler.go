package handlers

import (
	"net/http"

	"worklink_backend/internal/middleware"
	"worklink_backend/internal/models"
	"worklink_backend/internal/services"
	"worklink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	appService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, appService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler: base,
		appService:  appService,
	}
}

// RegisterRoutes регистрирует маршруты откликов.
// authed уже защищен AuthMiddleware; роли накладываются поштучно.
func (h *ApplicationHandler) RegisterRoutes(authed *gin.RouterGroup) {
	candidateOnly := middleware.RequireRoles(models.UserRoleCandidate)
	employerOnly := middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleAdmin)

	authed.POST("/jobs/:jobId/applications", candidateOnly, h.Apply)

	apps := authed.Group("/applications")
	{
		apps.GET("/my", candidateOnly, h.ListMy)
		apps.GET("/employer", employerOnly, h.ListForEmployer)
		apps.GET("/stats/my", employerOnly, h.GetStats)
		apps.GET("/stats/job/:jobId", employerOnly, h.GetJobStats)
		apps.GET("/:applicationId", h.GetApplication)
		apps.PATCH("/:applicationId/status", employerOnly, h.UpdateStatus)
		apps.DELETE("/:applicationId", candidateOnly, h.Withdraw)
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	candidateID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	app, err := h.appService.Apply(db, candidateID, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	app, err := h.appService.GetApplication(db, userID, middleware.GetUserRole(c), c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	app, err := h.appService.UpdateStatus(db, employerID, c.Param("applicationId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	candidateID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.appService.Withdraw(db, candidateID, c.Param("applicationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Application withdrawn",
	})
}

func (h *ApplicationHandler) ListMy(c *gin.Context) {
	candidateID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplicationListRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	apps, err := h.appService.ListForCandidate(db, candidateID, &req, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) ListForEmployer(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplicationListRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	apps, err := h.appService.ListForEmployer(db, employerID, &req, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) GetStats(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	stats, err := h.appService.GetStats(db, employerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *ApplicationHandler) GetJobStats(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	stats, err := h.appService.GetJobStats(db, employerID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
