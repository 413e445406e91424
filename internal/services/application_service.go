package services

import (
	"time"

	"worklink_backend/internal/email"
	"worklink_backend/internal/logger"
	"worklink_backend/internal/models"
	"worklink_backend/internal/repositories"
	"worklink_backend/internal/services/dto"
	"worklink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ApplicationService interface {
	Apply(db *gorm.DB, candidateID, jobID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)
	GetApplication(db *gorm.DB, viewerID string, viewerRole models.UserRole, appID string) (*dto.ApplicationResponse, error)
	UpdateStatus(db *gorm.DB, employerID, appID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
	Withdraw(db *gorm.DB, candidateID, appID string) error
	ListForCandidate(db *gorm.DB, candidateID string, req *dto.ApplicationListRequest, page, pageSize int) (*dto.ApplicationListResponse, error)
	ListForEmployer(db *gorm.DB, employerID string, req *dto.ApplicationListRequest, page, pageSize int) (*dto.ApplicationListResponse, error)
	GetStats(db *gorm.DB, employerID string) (*dto.ApplicationStatsResponse, error)
	GetJobStats(db *gorm.DB, employerID, jobID string) (*dto.ApplicationStatsResponse, error)
}

type ApplicationServiceImpl struct {
	appRepo       repositories.ApplicationRepository
	jobRepo       repositories.JobRepository
	userRepo      repositories.UserRepository
	emailProvider email.Provider
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) ApplicationService {
	return &ApplicationServiceImpl{
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		userRepo:      userRepo,
		emailProvider: emailProvider,
	}
}

// Apply - отклик кандидата на вакансию.
// Вакансия должна быть активной; на свою вакансию откликнуться нельзя;
// повторный отклик ловится уникальным индексом (job_id, candidate_id).
func (s *ApplicationServiceImpl) Apply(db *gorm.DB, candidateID, jobID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if job.EmployerID == candidateID {
		return nil, apperrors.ErrCannotApplyToOwnJob
	}
	if job.Status != models.JobStatusActive {
		return nil, apperrors.ErrJobNotActive
	}
	if job.Deadline != nil && job.Deadline.Before(time.Now()) {
		return nil, apperrors.ErrJobNotActive
	}

	availability := models.Availability(req.Availability)
	if availability == "" {
		availability = models.AvailabilityNegotiable
	}

	app := &models.Application{
		JobID:                  job.ID,
		CandidateID:            candidateID,
		EmployerID:             job.EmployerID,
		Status:                 models.ApplicationStatusPending,
		CoverLetter:            req.CoverLetter,
		ResumeURL:              req.ResumeURL,
		MobileNumber:           req.MobileNumber,
		ExpectedSalaryAmount:   req.ExpectedSalaryAmount,
		ExpectedSalaryCurrency: req.ExpectedSalaryCurrency,
		Availability:           availability,
		Notes:                  req.Notes,
		AppliedAt:              time.Now(),
	}

	if err := s.appRepo.Create(db, app); err != nil {
		if apperrors.Is(err, repositories.ErrApplicationExists) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}

	s.notifyApplicationReceived(db, job, candidateID)

	resp := dto.NewApplicationResponse(app)
	return &resp, nil
}

// GetApplication - отклик по ID.
// Виден только кандидату-автору и работодателю-владельцу вакансии;
// для всех остальных неотличим от несуществующего.
func (s *ApplicationServiceImpl) GetApplication(db *gorm.DB, viewerID string, viewerRole models.UserRole, appID string) (*dto.ApplicationResponse, error) {
	app, err := s.appRepo.FindByID(db, appID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if viewerRole != models.UserRoleAdmin &&
		app.CandidateID != viewerID && app.EmployerID != viewerID {
		return nil, apperrors.ErrApplicationNotFound
	}

	resp := dto.NewApplicationResponse(app)
	return &resp, nil
}

// UpdateStatus - смена статуса отклика работодателем.
// Переход сверяется с таблицей переходов; ReviewedAt ставится один
// раз, при первом уходе из pending.
func (s *ApplicationServiceImpl) UpdateStatus(db *gorm.DB, employerID, appID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	var app *models.Application

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		app, err = s.appRepo.FindByID(tx, appID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrApplicationNotFound) {
				return apperrors.ErrApplicationNotFound
			}
			return apperrors.InternalError(err)
		}

		// Чужой отклик неотличим от несуществующего
		if app.EmployerID != employerID {
			return apperrors.ErrApplicationNotFound
		}

		if !models.CanTransition(app.Status, req.Status) {
			return apperrors.ErrInvalidTransition.WithDetails(map[string]interface{}{
				"current_status": app.Status,
				"allowed":        models.AllowedNext(app.Status),
			})
		}

		if app.ReviewedAt == nil {
			now := time.Now()
			app.ReviewedAt = &now
		}
		app.Status = req.Status
		if req.EmployerNotes != nil {
			app.EmployerNotes = *req.EmployerNotes
		}

		if err := s.appRepo.Update(tx, app); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatusChanged(db, app)

	resp := dto.NewApplicationResponse(app)
	return &resp, nil
}

// Withdraw - отзыв отклика кандидатом.
// Разрешен только в статусе pending; проверка и удаление идут в одной
// транзакции, чтобы не отозвать уже рассмотренный отклик.
func (s *ApplicationServiceImpl) Withdraw(db *gorm.DB, candidateID, appID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		app, err := s.appRepo.FindByID(tx, appID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrApplicationNotFound) {
				return apperrors.ErrApplicationNotFound
			}
			return apperrors.InternalError(err)
		}

		if app.CandidateID != candidateID {
			return apperrors.ErrApplicationNotFound
		}
		if app.Status != models.ApplicationStatusPending {
			return apperrors.ErrWithdrawNotPending
		}

		if err := s.appRepo.Delete(tx, app.ID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

// ListForCandidate - отклики текущего кандидата
func (s *ApplicationServiceImpl) ListForCandidate(db *gorm.DB, candidateID string, req *dto.ApplicationListRequest, page, pageSize int) (*dto.ApplicationListResponse, error) {
	filter := repositories.ApplicationFilter{
		CandidateID: candidateID,
		JobID:       req.JobID,
		Status:      models.ApplicationStatus(req.Status),
		Page:        page,
		PageSize:    pageSize,
	}
	return s.list(db, filter)
}

// ListForEmployer - отклики на вакансии текущего работодателя,
// опционально суженные до одной вакансии
func (s *ApplicationServiceImpl) ListForEmployer(db *gorm.DB, employerID string, req *dto.ApplicationListRequest, page, pageSize int) (*dto.ApplicationListResponse, error) {
	filter := repositories.ApplicationFilter{
		EmployerID: employerID,
		JobID:      req.JobID,
		Status:     models.ApplicationStatus(req.Status),
		Page:       page,
		PageSize:   pageSize,
	}
	return s.list(db, filter)
}

func (s *ApplicationServiceImpl) list(db *gorm.DB, filter repositories.ApplicationFilter) (*dto.ApplicationListResponse, error) {
	apps, total, err := s.appRepo.ListWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewApplicationListResponse(apps, filter.Page, filter.PageSize, total)
	return &resp, nil
}

// GetStats - отклики работодателя по статусам
func (s *ApplicationServiceImpl) GetStats(db *gorm.DB, employerID string) (*dto.ApplicationStatsResponse, error) {
	counts, err := s.appRepo.CountByStatusForEmployer(db, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stats := &dto.ApplicationStatsResponse{
		ByStatus: make(map[models.ApplicationStatus]int64),
	}
	for _, c := range counts {
		stats.ByStatus[c.Status] = c.Count
		stats.Total += c.Count
	}
	return stats, nil
}

// GetJobStats - отклики на одну вакансию по статусам.
// Вакансия должна принадлежать работодателю; чужая неотличима
// от несуществующей.
func (s *ApplicationServiceImpl) GetJobStats(db *gorm.DB, employerID, jobID string) (*dto.ApplicationStatsResponse, error) {
	job, err := s.jobRepo.FindOwnedByID(db, jobID, employerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	counts, err := s.appRepo.CountByStatusForJob(db, job.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stats := &dto.ApplicationStatsResponse{
		ByStatus: make(map[models.ApplicationStatus]int64),
	}
	for _, c := range counts {
		stats.ByStatus[c.Status] = c.Count
		stats.Total += c.Count
	}
	return stats, nil
}

// notifyApplicationReceived шлет письмо работодателю о новом отклике.
// Лучшая попытка: сбой почты не влияет на результат операции.
func (s *ApplicationServiceImpl) notifyApplicationReceived(db *gorm.DB, job *models.Job, candidateID string) {
	employer, err := s.userRepo.FindByID(db, job.EmployerID)
	if err != nil {
		logger.WithError(err).Warn("skip notification: employer lookup failed", "employer_id", job.EmployerID)
		return
	}
	candidate, err := s.userRepo.FindByID(db, candidateID)
	if err != nil {
		logger.WithError(err).Warn("skip notification: candidate lookup failed", "candidate_id", candidateID)
		return
	}

	go func() {
		err := s.emailProvider.SendWithTemplate(
			email.TemplateApplicationReceived,
			email.TemplateData{
				"JobTitle":      job.Title,
				"CandidateName": candidate.Name,
			},
			&email.Message{
				To:      []string{employer.Email},
				Subject: "New application: " + job.Title,
			},
		)
		if err != nil {
			logger.WithError(err).Warn("failed to send application notification", "job_id", job.ID)
		}
	}()
}

// notifyStatusChanged шлет кандидату письмо о смене статуса отклика
func (s *ApplicationServiceImpl) notifyStatusChanged(db *gorm.DB, app *models.Application) {
	candidate, err := s.userRepo.FindByID(db, app.CandidateID)
	if err != nil {
		logger.WithError(err).Warn("skip notification: candidate lookup failed", "candidate_id", app.CandidateID)
		return
	}
	job, err := s.jobRepo.FindByID(db, app.JobID)
	if err != nil {
		logger.WithError(err).Warn("skip notification: job lookup failed", "job_id", app.JobID)
		return
	}

	status := app.Status
	go func() {
		err := s.emailProvider.SendWithTemplate(
			email.TemplateApplicationStatus,
			email.TemplateData{
				"JobTitle": job.Title,
				"Status":   status,
			},
			&email.Message{
				To:      []string{candidate.Email},
				Subject: "Application update: " + job.Title,
			},
		)
		if err != nil {
			logger.WithError(err).Warn("failed to send status notification", "application_id", app.ID)
		}
	}()
}
