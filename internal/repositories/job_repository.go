package repositories

import (
	"errors"
	"strings"

	"worklink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

// JobFilter - критерии публичного поиска вакансий
type JobFilter struct {
	Query      string // free-text по title/description/skills
	Location   string // подстрока, без учета регистра
	Type       models.JobType
	Experience models.ExperienceLevel
	Remote     *bool
	Page       int
	PageSize   int
}

// JobStatusCount - строка агрегата "статус -> количество"
type JobStatusCount struct {
	Status models.JobStatus `json:"status"`
	Count  int64            `json:"count"`
}

// JobRepository определяет операции над вакансиями
type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)

	// FindOwnedByID ищет вакансию по (id, employer_id). "Чужая" и
	// "несуществующая" вакансия неотличимы - обе дают ErrJobNotFound.
	FindOwnedByID(db *gorm.DB, id, employerID string) (*models.Job, error)

	Update(db *gorm.DB, job *models.Job) error
	Delete(db *gorm.DB, id, employerID string) error
	Search(db *gorm.DB, criteria JobFilter) ([]models.Job, int64, error)
	ListByEmployer(db *gorm.DB, employerID string, page, pageSize int) ([]models.Job, int64, error)
	IncrementViews(db *gorm.DB, id string) error
	CountByStatus(db *gorm.DB, employerID string) ([]JobStatusCount, error)
}

type jobRepository struct{}

// NewJobRepository создает новый экземпляр JobRepository
func NewJobRepository() JobRepository {
	return &jobRepository{}
}

func (r *jobRepository) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *jobRepository) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindOwnedByID(db *gorm.DB, id, employerID string) (*models.Job, error) {
	var job models.Job
	err := db.Where("id = ? AND employer_id = ?", id, employerID).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Update(db *gorm.DB, job *models.Job) error {
	return db.Save(job).Error
}

func (r *jobRepository) Delete(db *gorm.DB, id, employerID string) error {
	result := db.Where("id = ? AND employer_id = ?", id, employerID).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) Search(db *gorm.DB, criteria JobFilter) ([]models.Job, int64, error) {
	// Публичный поиск видит только активные вакансии
	query := db.Model(&models.Job{}).Where("status = ?", models.JobStatusActive)

	if criteria.Query != "" {
		pattern := "%" + strings.ToLower(criteria.Query) + "%"
		if db.Dialector.Name() == "postgres" {
			// skills - jsonb, для LIKE нужен явный каст
			query = query.Where(
				"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(skills::text) LIKE ?",
				pattern, pattern, pattern,
			)
		} else {
			query = query.Where(
				"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(skills) LIKE ?",
				pattern, pattern, pattern,
			)
		}
	}
	if criteria.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(criteria.Location)+"%")
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}
	if criteria.Experience != "" {
		query = query.Where("experience = ?", criteria.Experience)
	}
	if criteria.Remote != nil {
		query = query.Where("remote = ?", *criteria.Remote)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").
		Offset((criteria.Page - 1) * criteria.PageSize).
		Limit(criteria.PageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepository) ListByEmployer(db *gorm.DB, employerID string, page, pageSize int) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{}).Where("employer_id = ?", employerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepository) IncrementViews(db *gorm.DB, id string) error {
	return db.Model(&models.Job{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *jobRepository) CountByStatus(db *gorm.DB, employerID string) ([]JobStatusCount, error) {
	var counts []JobStatusCount
	err := db.Model(&models.Job{}).
		Select("status, COUNT(*) as count").
		Where("employer_id = ?", employerID).
		Group("status").
		Scan(&counts).Error
	return counts, err
}
