package dto

import (
	"time"

	"worklink_backend/internal/models"

	"gorm.io/datatypes"
)

// CreateJobRequest - публикация вакансии
type CreateJobRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"omitempty,max=10000"`
	Company     string `json:"company" validate:"omitempty,max=200"`
	Location    string `json:"location" validate:"omitempty,max=200"`

	Requirements     []string `json:"requirements" validate:"omitempty,max=50,dive,max=500"`
	Responsibilities []string `json:"responsibilities" validate:"omitempty,max=50,dive,max=500"`
	Skills           []string `json:"skills" validate:"omitempty,max=50,dive,min=1,max=50"`
	Benefits         []string `json:"benefits" validate:"omitempty,max=50,dive,max=500"`

	Type       string `json:"type" validate:"omitempty,is-job-type"`
	Experience string `json:"experience" validate:"omitempty,is-experience"`

	SalaryMin      float64 `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax      float64 `json:"salary_max" validate:"omitempty,min=0,gtefield=SalaryMin"`
	SalaryCurrency string  `json:"salary_currency" validate:"omitempty,len=3"`

	Remote   bool       `json:"remote"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

// UpdateJobRequest - частичное обновление вакансии.
// nil-поле означает "не трогать". Статус меняется отдельными
// операциями close/reopen, а не через это обновление.
type UpdateJobRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	Company     *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=200"`

	Requirements     []string `json:"requirements,omitempty" validate:"omitempty,max=50,dive,max=500"`
	Responsibilities []string `json:"responsibilities,omitempty" validate:"omitempty,max=50,dive,max=500"`
	Skills           []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,min=1,max=50"`
	Benefits         []string `json:"benefits,omitempty" validate:"omitempty,max=50,dive,max=500"`

	Type       *string `json:"type,omitempty" validate:"omitempty,is-job-type"`
	Experience *string `json:"experience,omitempty" validate:"omitempty,is-experience"`

	SalaryMin      *float64 `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax      *float64 `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	SalaryCurrency *string  `json:"salary_currency,omitempty" validate:"omitempty,len=3"`

	Remote   *bool      `json:"remote,omitempty"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

// JobSearchRequest - публичный поиск вакансий
type JobSearchRequest struct {
	Query      string `form:"q" validate:"omitempty,max=200"`
	Location   string `form:"location" validate:"omitempty,max=200"`
	Type       string `form:"type" validate:"omitempty,is-job-type"`
	Experience string `form:"experience" validate:"omitempty,is-experience"`
	Remote     *bool  `form:"remote"`
}

// JobResponse - вакансия в ответе API
type JobResponse struct {
	ID          string `json:"id"`
	EmployerID  string `json:"employer_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`

	Requirements     datatypes.JSON `json:"requirements,omitempty"`
	Responsibilities datatypes.JSON `json:"responsibilities,omitempty"`
	Skills           datatypes.JSON `json:"skills,omitempty"`
	Benefits         datatypes.JSON `json:"benefits,omitempty"`

	Type       models.JobType         `json:"type,omitempty"`
	Experience models.ExperienceLevel `json:"experience,omitempty"`

	SalaryMin      float64 `json:"salary_min,omitempty"`
	SalaryMax      float64 `json:"salary_max,omitempty"`
	SalaryCurrency string  `json:"salary_currency,omitempty"`

	Remote   bool             `json:"remote"`
	Deadline *time.Time       `json:"deadline,omitempty"`
	Status   models.JobStatus `json:"status"`
	Views    int              `json:"views"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobListResponse - страница вакансий
type JobListResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	Pagination Pagination    `json:"pagination"`
}

// JobStatsResponse - сводка по вакансиям работодателя
type JobStatsResponse struct {
	TotalJobs           int64                              `json:"total_jobs"`
	JobsByStatus        map[models.JobStatus]int64         `json:"jobs_by_status"`
	TotalApplications   int64                              `json:"total_applications"`
	ApplicationsByState map[models.ApplicationStatus]int64 `json:"applications_by_status"`
}

// NewJobResponse собирает JobResponse из модели
func NewJobResponse(j *models.Job) JobResponse {
	return JobResponse{
		ID:               j.ID,
		EmployerID:       j.EmployerID,
		Title:            j.Title,
		Description:      j.Description,
		Company:          j.Company,
		Location:         j.Location,
		Requirements:     j.Requirements,
		Responsibilities: j.Responsibilities,
		Skills:           j.Skills,
		Benefits:         j.Benefits,
		Type:             j.Type,
		Experience:       j.Experience,
		SalaryMin:        j.SalaryMin,
		SalaryMax:        j.SalaryMax,
		SalaryCurrency:   j.SalaryCurrency,
		Remote:           j.Remote,
		Deadline:         j.Deadline,
		Status:           j.Status,
		Views:            j.Views,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}

// NewJobListResponse собирает страницу вакансий
func NewJobListResponse(jobs []models.Job, page, limit int, total int64) JobListResponse {
	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, NewJobResponse(&jobs[i]))
	}
	return JobListResponse{
		Jobs:       out,
		Pagination: NewPagination(page, limit, total),
	}
}
