package dto

import (
	"time"

	"worklink_backend/internal/models"
)

// CreateApplicationRequest - отклик кандидата на вакансию.
// JobID берется из URL, CandidateID - из токена.
type CreateApplicationRequest struct {
	CoverLetter  string `json:"cover_letter" validate:"omitempty,max=5000"`
	ResumeURL    string `json:"resume_url" validate:"omitempty,url,max=500"`
	MobileNumber string `json:"mobile_number" validate:"omitempty,e164"`

	ExpectedSalaryAmount   float64 `json:"expected_salary_amount" validate:"omitempty,min=0"`
	ExpectedSalaryCurrency string  `json:"expected_salary_currency" validate:"omitempty,len=3"`

	Availability string `json:"availability" validate:"omitempty,is-availability"`
	Notes        string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateApplicationStatusRequest - смена статуса отклика работодателем
type UpdateApplicationStatusRequest struct {
	Status        models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
	EmployerNotes *string                  `json:"employer_notes,omitempty" validate:"omitempty,max=2000"`
}

// ApplicationListRequest - фильтры списка откликов
type ApplicationListRequest struct {
	JobID  string `form:"job_id" validate:"omitempty,uuid4"`
	Status string `form:"status" validate:"omitempty,is-application-status"`
}

// ApplicationResponse - отклик в ответе API
type ApplicationResponse struct {
	ID          string `json:"id"`
	JobID       string `json:"job_id"`
	CandidateID string `json:"candidate_id"`
	EmployerID  string `json:"employer_id"`

	Status models.ApplicationStatus `json:"status"`

	CoverLetter  string `json:"cover_letter,omitempty"`
	ResumeURL    string `json:"resume_url,omitempty"`
	MobileNumber string `json:"mobile_number,omitempty"`

	ExpectedSalaryAmount   float64 `json:"expected_salary_amount,omitempty"`
	ExpectedSalaryCurrency string  `json:"expected_salary_currency,omitempty"`

	Availability models.Availability `json:"availability"`

	Notes         string `json:"notes,omitempty"`
	EmployerNotes string `json:"employer_notes,omitempty"`

	AppliedAt  time.Time  `json:"applied_at"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ApplicationListResponse - страница откликов
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Pagination   Pagination            `json:"pagination"`
}

// ApplicationStatsResponse - сводка по откликам работодателя
type ApplicationStatsResponse struct {
	Total    int64                              `json:"total"`
	ByStatus map[models.ApplicationStatus]int64 `json:"by_status"`
}

// NewApplicationResponse собирает ApplicationResponse из модели
func NewApplicationResponse(a *models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                     a.ID,
		JobID:                  a.JobID,
		CandidateID:            a.CandidateID,
		EmployerID:             a.EmployerID,
		Status:                 a.Status,
		CoverLetter:            a.CoverLetter,
		ResumeURL:              a.ResumeURL,
		MobileNumber:           a.MobileNumber,
		ExpectedSalaryAmount:   a.ExpectedSalaryAmount,
		ExpectedSalaryCurrency: a.ExpectedSalaryCurrency,
		Availability:           a.Availability,
		Notes:                  a.Notes,
		EmployerNotes:          a.EmployerNotes,
		AppliedAt:              a.AppliedAt,
		ReviewedAt:             a.ReviewedAt,
		CreatedAt:              a.CreatedAt,
		UpdatedAt:              a.UpdatedAt,
	}
}

// NewApplicationListResponse собирает страницу откликов
func NewApplicationListResponse(apps []models.Application, page, limit int, total int64) ApplicationListResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationResponse(&apps[i]))
	}
	return ApplicationListResponse{
		Applications: out,
		Pagination:   NewPagination(page, limit, total),
	}
}
