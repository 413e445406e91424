package models

import "time"

type Application struct {
	BaseModel
	// Уникальный составной индекс (job_id, candidate_id):
	// кандидат откликается на вакансию не более одного раза.
	// Это единственная гарантия против гонки двойного отклика.
	JobID       string `gorm:"not null;index;uniqueIndex:idx_job_candidate" json:"job_id"`
	CandidateID string `gorm:"not null;index;uniqueIndex:idx_job_candidate" json:"candidate_id"`

	// Денормализованный владелец вакансии на момент отклика.
	// Нужен, чтобы авторизовать запросы работодателя без join.
	EmployerID string `gorm:"not null;index" json:"employer_id"`

	Status ApplicationStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	CoverLetter  string `json:"cover_letter"`
	ResumeURL    string `json:"resume_url"`
	MobileNumber string `json:"mobile_number"`

	ExpectedSalaryAmount   float64 `json:"expected_salary_amount"`
	ExpectedSalaryCurrency string  `gorm:"type:varchar(10)" json:"expected_salary_currency"`

	Availability Availability `gorm:"type:varchar(20);default:'negotiable'" json:"availability"`

	Notes         string `json:"notes,omitempty"`
	EmployerNotes string `json:"employer_notes,omitempty"`

	AppliedAt time.Time `gorm:"not null" json:"applied_at"`
	// Ставится один раз - при первом уходе статуса из pending
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}
