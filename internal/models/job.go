package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	EmployerID  string `gorm:"not null;index" json:"employer_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Company     string `json:"company"`
	Location    string `json:"location"`

	Requirements     datatypes.JSON `gorm:"type:jsonb" json:"requirements"`
	Responsibilities datatypes.JSON `gorm:"type:jsonb" json:"responsibilities"`
	Skills           datatypes.JSON `gorm:"type:jsonb" json:"skills"`
	Benefits         datatypes.JSON `gorm:"type:jsonb" json:"benefits"`

	Type       JobType         `gorm:"type:varchar(20)" json:"type"`
	Experience ExperienceLevel `gorm:"type:varchar(20)" json:"experience"`

	SalaryMin      float64 `json:"salary_min"`
	SalaryMax      float64 `json:"salary_max"`
	SalaryCurrency string  `gorm:"type:varchar(10)" json:"salary_currency"`

	Remote   bool       `gorm:"default:false" json:"remote"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Status   JobStatus  `gorm:"type:varchar(20);default:'active';index" json:"status"`
	Views    int        `gorm:"default:0" json:"views"`

	// Relations
	Applications []Application `gorm:"foreignKey:JobID" json:"-"`
}
