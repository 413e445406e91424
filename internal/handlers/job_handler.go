package handlers

import (
	"net/http"

	"worklink_backend/internal/middleware"
	"worklink_backend/internal/models"
	"worklink_backend/internal/services"
	"worklink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

// RegisterRoutes регистрирует маршруты вакансий.
// public доступен без токена (карточка и поиск), authed защищен
// AuthMiddleware, мутации дополнительно ограничены ролью employer.
func (h *JobHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/jobs/search", h.Search)
	public.GET("/jobs/:jobId", h.GetJob)

	employer := authed.Group("/jobs")
	employer.Use(middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleAdmin))
	{
		employer.POST("", h.CreateJob)
		employer.GET("/my", h.ListMyJobs)
		employer.GET("/stats/my", h.GetStats)
		employer.PUT("/:jobId", h.UpdateJob)
		employer.DELETE("/:jobId", h.DeleteJob)
		employer.PATCH("/:jobId/close", h.CloseJob)
		employer.PATCH("/:jobId/reopen", h.ReopenJob)
	}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	job, err := h.jobService.CreateJob(db, employerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	db := h.GetDB(c)

	// Для анонимного запроса viewerID пуст - просмотр засчитается
	job, err := h.jobService.GetJob(db, c.Param("jobId"), middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	job, err := h.jobService.UpdateJob(db, employerID, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.jobService.DeleteJob(db, employerID, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job deleted",
	})
}

func (h *JobHandler) CloseJob(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	job, err := h.jobService.CloseJob(db, employerID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ReopenJob(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	job, err := h.jobService.ReopenJob(db, employerID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Search(c *gin.Context) {
	var req dto.JobSearchRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	jobs, err := h.jobService.SearchJobs(db, &req, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	jobs, err := h.jobService.ListMyJobs(db, employerID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetStats(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	stats, err := h.jobService.GetStats(db, employerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
