package repositories

import (
	"errors"

	"worklink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("application already exists")
)

// ApplicationFilter - критерии выборки откликов. Заполняется ровно одно из
// CandidateID/EmployerID - сервис всегда ограничивает выборку стороной запроса.
type ApplicationFilter struct {
	CandidateID string
	EmployerID  string
	JobID       string
	Status      models.ApplicationStatus
	Page        int
	PageSize    int
}

// ApplicationStatusCount - строка агрегата "статус -> количество"
type ApplicationStatusCount struct {
	Status models.ApplicationStatus `json:"status"`
	Count  int64                    `json:"count"`
}

// ApplicationRepository определяет операции над откликами
type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	Update(db *gorm.DB, app *models.Application) error
	Delete(db *gorm.DB, id string) error
	ListWithFilter(db *gorm.DB, criteria ApplicationFilter) ([]models.Application, int64, error)
	CountByStatusForEmployer(db *gorm.DB, employerID string) ([]ApplicationStatusCount, error)
	CountByStatusForJob(db *gorm.DB, jobID string) ([]ApplicationStatusCount, error)
}

type applicationRepository struct{}

// NewApplicationRepository создает новый экземпляр ApplicationRepository
func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(db *gorm.DB, app *models.Application) error {
	err := db.Create(app).Error
	if err != nil {
		// Нарушение idx_job_candidate: повторный отклик
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
			return ErrApplicationExists
		}
		return err
	}
	return nil
}

func (r *applicationRepository) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	if err := db.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Update(db *gorm.DB, app *models.Application) error {
	return db.Save(app).Error
}

func (r *applicationRepository) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Application{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepository) ListWithFilter(db *gorm.DB, criteria ApplicationFilter) ([]models.Application, int64, error) {
	query := db.Model(&models.Application{})

	if criteria.CandidateID != "" {
		query = query.Where("candidate_id = ?", criteria.CandidateID)
	}
	if criteria.EmployerID != "" {
		query = query.Where("employer_id = ?", criteria.EmployerID)
	}
	if criteria.JobID != "" {
		query = query.Where("job_id = ?", criteria.JobID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Application
	err := query.Order("applied_at DESC").
		Offset((criteria.Page - 1) * criteria.PageSize).
		Limit(criteria.PageSize).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *applicationRepository) CountByStatusForEmployer(db *gorm.DB, employerID string) ([]ApplicationStatusCount, error) {
	var counts []ApplicationStatusCount
	err := db.Model(&models.Application{}).
		Select("status, COUNT(*) as count").
		Where("employer_id = ?", employerID).
		Group("status").
		Scan(&counts).Error
	return counts, err
}

func (r *applicationRepository) CountByStatusForJob(db *gorm.DB, jobID string) ([]ApplicationStatusCount, error) {
	var counts []ApplicationStatusCount
	err := db.Model(&models.Application{}).
		Select("status, COUNT(*) as count").
		Where("job_id = ?", jobID).
		Group("status").
		Scan(&counts).Error
	return counts, err
}
