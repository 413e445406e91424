package services

import (
	"encoding/json"

	"worklink_backend/internal/logger"
	"worklink_backend/internal/models"
	"worklink_backend/internal/repositories"
	"worklink_backend/internal/services/dto"
	"worklink_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobService interface {
	CreateJob(db *gorm.DB, employerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(db *gorm.DB, jobID, viewerID string) (*dto.JobResponse, error)
	UpdateJob(db *gorm.DB, employerID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(db *gorm.DB, employerID, jobID string) error
	CloseJob(db *gorm.DB, employerID, jobID string) (*dto.JobResponse, error)
	ReopenJob(db *gorm.DB, employerID, jobID string) (*dto.JobResponse, error)
	SearchJobs(db *gorm.DB, req *dto.JobSearchRequest, page, pageSize int) (*dto.JobListResponse, error)
	ListMyJobs(db *gorm.DB, employerID string, page, pageSize int) (*dto.JobListResponse, error)
	GetStats(db *gorm.DB, employerID string) (*dto.JobStatsResponse, error)
}

type JobServiceImpl struct {
	jobRepo repositories.JobRepository
	appRepo repositories.ApplicationRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
) JobService {
	return &JobServiceImpl{
		jobRepo: jobRepo,
		appRepo: appRepo,
	}
}

// CreateJob - публикация вакансии. Вакансия сразу активна.
func (s *JobServiceImpl) CreateJob(db *gorm.DB, employerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	requirements, err := jsonList(req.Requirements)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	responsibilities, err := jsonList(req.Responsibilities)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	skills, err := jsonList(req.Skills)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	benefits, err := jsonList(req.Benefits)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	job := &models.Job{
		EmployerID:       employerID,
		Title:            req.Title,
		Description:      req.Description,
		Company:          req.Company,
		Location:         req.Location,
		Requirements:     requirements,
		Responsibilities: responsibilities,
		Skills:           skills,
		Benefits:         benefits,
		Type:             models.JobType(req.Type),
		Experience:       models.ExperienceLevel(req.Experience),
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		SalaryCurrency:   req.SalaryCurrency,
		Remote:           req.Remote,
		Deadline:         req.Deadline,
		Status:           models.JobStatusActive,
	}

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewJobResponse(job)
	return &resp, nil
}

// GetJob - публичная карточка вакансии.
// Просмотр чужой вакансии увеличивает счетчик просмотров.
func (s *JobServiceImpl) GetJob(db *gorm.DB, jobID, viewerID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if viewerID != job.EmployerID {
		if err := s.jobRepo.IncrementViews(db, jobID); err != nil {
			logger.WithError(err).Warn("failed to increment job views", "job_id", jobID)
		} else {
			job.Views++
		}
	}

	resp := dto.NewJobResponse(job)
	return &resp, nil
}

// UpdateJob - частичное обновление вакансии владельцем.
// Чужая вакансия неотличима от несуществующей.
func (s *JobServiceImpl) UpdateJob(db *gorm.DB, employerID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindOwnedByID(db, jobID, employerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Company != nil {
		job.Company = *req.Company
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Requirements != nil {
		if job.Requirements, err = jsonList(req.Requirements); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	if req.Responsibilities != nil {
		if job.Responsibilities, err = jsonList(req.Responsibilities); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	if req.Skills != nil {
		if job.Skills, err = jsonList(req.Skills); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	if req.Benefits != nil {
		if job.Benefits, err = jsonList(req.Benefits); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	if req.Type != nil {
		job.Type = models.JobType(*req.Type)
	}
	if req.Experience != nil {
		job.Experience = models.ExperienceLevel(*req.Experience)
	}
	if req.SalaryMin != nil {
		job.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = *req.SalaryMax
	}
	if req.SalaryCurrency != nil {
		job.SalaryCurrency = *req.SalaryCurrency
	}
	if req.Remote != nil {
		job.Remote = *req.Remote
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}

	// Инвариант зарплатной вилки проверяется после слияния: patch мог
	// изменить только одну из границ
	if job.SalaryMin > 0 && job.SalaryMax > 0 && job.SalaryMax < job.SalaryMin {
		return nil, apperrors.ErrInvalidOperation("job", "salary_max cannot be less than salary_min")
	}

	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewJobResponse(job)
	return &resp, nil
}

// DeleteJob - удаление вакансии вместе с откликами на нее
func (s *JobServiceImpl) DeleteJob(db *gorm.DB, employerID, jobID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.jobRepo.Delete(tx, jobID, employerID); err != nil {
			if apperrors.Is(err, repositories.ErrJobNotFound) {
				return apperrors.ErrJobNotFound
			}
			return apperrors.InternalError(err)
		}
		if err := tx.Where("job_id = ?", jobID).Delete(&models.Application{}).Error; err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

// CloseJob - снятие вакансии с публикации. Только из статуса active.
func (s *JobServiceImpl) CloseJob(db *gorm.DB, employerID, jobID string) (*dto.JobResponse, error) {
	return s.setStatus(db, employerID, jobID, models.JobStatusActive, models.JobStatusClosed)
}

// ReopenJob - возврат закрытой вакансии в публикацию
func (s *JobServiceImpl) ReopenJob(db *gorm.DB, employerID, jobID string) (*dto.JobResponse, error) {
	return s.setStatus(db, employerID, jobID, models.JobStatusClosed, models.JobStatusActive)
}

func (s *JobServiceImpl) setStatus(db *gorm.DB, employerID, jobID string, from, to models.JobStatus) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindOwnedByID(db, jobID, employerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if job.Status != from {
		return nil, apperrors.ErrInvalidJobStatus
	}

	job.Status = to
	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewJobResponse(job)
	return &resp, nil
}

// SearchJobs - публичный поиск по активным вакансиям
func (s *JobServiceImpl) SearchJobs(db *gorm.DB, req *dto.JobSearchRequest, page, pageSize int) (*dto.JobListResponse, error) {
	filter := repositories.JobFilter{
		Query:      req.Query,
		Location:   req.Location,
		Type:       models.JobType(req.Type),
		Experience: models.ExperienceLevel(req.Experience),
		Remote:     req.Remote,
		Page:       page,
		PageSize:   pageSize,
	}

	jobs, total, err := s.jobRepo.Search(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewJobListResponse(jobs, page, pageSize, total)
	return &resp, nil
}

// ListMyJobs - вакансии текущего работодателя, любые статусы
func (s *JobServiceImpl) ListMyJobs(db *gorm.DB, employerID string, page, pageSize int) (*dto.JobListResponse, error) {
	jobs, total, err := s.jobRepo.ListByEmployer(db, employerID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewJobListResponse(jobs, page, pageSize, total)
	return &resp, nil
}

// GetStats - сводка работодателя: вакансии и отклики по статусам
func (s *JobServiceImpl) GetStats(db *gorm.DB, employerID string) (*dto.JobStatsResponse, error) {
	jobCounts, err := s.jobRepo.CountByStatus(db, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	appCounts, err := s.appRepo.CountByStatusForEmployer(db, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stats := &dto.JobStatsResponse{
		JobsByStatus:        make(map[models.JobStatus]int64),
		ApplicationsByState: make(map[models.ApplicationStatus]int64),
	}
	for _, c := range jobCounts {
		stats.JobsByStatus[c.Status] = c.Count
		stats.TotalJobs += c.Count
	}
	for _, c := range appCounts {
		stats.ApplicationsByState[c.Status] = c.Count
		stats.TotalApplications += c.Count
	}
	return stats, nil
}

// jsonList переводит срез строк в jsonb-колонку
func jsonList(items []string) (datatypes.JSON, error) {
	if items == nil {
		return nil, nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
