package services_test

import (
	"testing"

	"worklink_backend/internal/models"
	"worklink_backend/internal/services/dto"
	"worklink_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool        { return &b }
func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestCreateAndGetJob(t *testing.T) {
	env := newTestEnv(t)
	employer := createUser(t, env.db, "emp@test.com", models.UserRoleEmployer)
	candidate := createUser(t, env.db, "cand@test.com", models.UserRoleCandidate)

	job, err := env.jobService.CreateJob(env.db, employer.ID, &dto.CreateJobRequest{
		Title:     "Go Developer",
		Location:  "Berlin",
		Skills:    []string{"go", "postgres"},
		Type:      string(models.JobTypeFullTime),
		SalaryMin: 50000,
		SalaryMax: 70000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusActive, job.Status)
	assert.Equal(t, 0, job.Views)

	// Просмотр кандидатом увеличивает счетчик
	got, err := env.jobService.GetJob(env.db, job.ID, candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	// Просмотр владельцем - нет
	got, err = env.jobService.GetJob(env.db, job.ID, employer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	_, err = env.jobService.GetJob(env.db, "missing-id", "")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

// Чужая вакансия дает тот же ответ, что и несуществующая.
func TestUpdateJobOwnership(t *testing.T) {
	env := newTestEnv(t)
	employer := createUser(t, env.db, "emp@test.com", models.UserRoleEmployer)
	other := createUser(t, env.db, "other@test.com", models.UserRoleEmployer)
	job := createJob(t, env.db, employer.ID, models.JobStatusActive)

	_, err := env.jobService.UpdateJob(env.db, other.ID, job.ID, &dto.UpdateJobRequest{
		Title: strPtr("Hijacked"),
	})
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)

	updated, err := env.jobService.UpdateJob(env.db, employer.ID, job.ID, &dto.UpdateJobRequest{
		Title:  strPtr("Senior Backend Engineer"),
		Remote: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", updated.Title)
	assert.True(t, updated.Remote)
	// Нетронутые поля сохраняются
	assert.Equal(t, "Berlin", updated.Location)
}

func TestUpdateJobSalaryInvariant(t *testing.T) {
	env := newTestEnv(t)
	employer := createUser(t, env.db, "emp@test.com", models.UserRoleEmployer)
	job := createJob(t, env.db, employer.ID, models.JobStatusActive)

	_, err := env.jobService.UpdateJob(env.db, employer.ID, job.ID, &dto.UpdateJobRequest{
		SalaryMin: floatPtr(80000),
		SalaryMax: floatPtr(60000),
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestCloseAndReopenJob(t *testing.T) {
	env := newTestEnv(t)
	employer := createUser(t, env.db, "emp@test.com", models.UserRoleEmployer)
	job := createJob(t, env.db, employer.ID, models.JobStatusActive)

	closed, err := env.jobService.CloseJob(env.db, employer.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusClosed, closed.Status)

	// Повторное закрытие - конфликт статуса
	_, err = env.jobService.CloseJob(env.db, employer.ID, job.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidJobStatus)

	reopened, err := env.jobService.ReopenJob(env.db, employer.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusActive, reopened.Status)
}

func TestDeleteJobCascadesApplications(t *testing.T) {
	env := newTestEnv(t)
	employer := createUser(t, env.db, "emp@test.com", models.UserRoleEmployer)
	candidate := createUser(t, env.db, "cand@test.com", models.UserRoleCandidate)
	job := createJob(t, env.db, employer.ID, models.JobStatusActive)

	_, err := env.appService.Apply(env.db, candidate.ID, job.ID, &dto.CreateApplicationRequest{})
	require.NoError(t, err)

	require.NoError(t, env.jobService.DeleteJob(env.db, employer.ID, job.ID))

	var appCount int64
	env.db.Model(&models.Application{}).Where("job_id = ?", job.ID).Count(&appCount)
	assert.Equal(t, int64(0), appCount)

	err = env.jobService.DeleteJob(env.db, employer.ID, job.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestSearchJobs(t *testing.T) {
	env := newTestEnv(t)
	employer := createUser(t, env.db, "emp@test.com", models.UserRoleEmployer)

	mk := func(title, location string, remote bool, jt models.JobType, status models.JobStatus) {
		_, err := env.jobService.CreateJob(env.db, employer.ID, &dto.CreateJobRequest{
			Title:    title,
			Location: location,
			Remote:   remote,
			Type:     string(jt),
		})
		require.NoError(t, err)
		if status != models.JobStatusActive {
			require.NoError(t, env.db.Model(&models.Job{}).
				Where("title = ?", title).
				Update("status", status).Error)
		}
	}

	mk("Go Backend Engineer", "Berlin", true, models.JobTypeFullTime, models.JobStatusActive)
	mk("Frontend Developer", "Munich", false, models.JobTypePartTime, models.JobStatusActive)
	mk("Go Platform Engineer", "Berlin", false, models.JobTypeFullTime, models.JobStatusClosed)

	// Закрытые вакансии в публичном поиске не видны
	all, err := env.jobService.SearchJobs(env.db, &dto.JobSearchRequest{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Pagination.Total)

	// Текстовый поиск без учета регистра
	goJobs, err := env.jobService.SearchJobs(env.db, &dto.JobSearchRequest{Query: "go backend"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, goJobs.Jobs, 1)
	assert.Equal(t, "Go Backend Engineer", goJobs.Jobs[0].Title)

	berlin, err := env.jobService.SearchJobs(env.db, &dto.JobSearchRequest{Location: "berl"}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, berlin.Jobs, 1)

	remote, err := env.jobService.SearchJobs(env.db, &dto.JobSearchRequest{Remote: boolPtr(false)}, 1, 20)
	require.NoError(t, err)
	require.Len(t, remote.Jobs, 1)
	assert.Equal(t, "Frontend Developer", remote.Jobs[0].Title)

	fullTime, err := env.jobService.SearchJobs(env.db, &dto.JobSearchRequest{Type: string(models.JobTypeFullTime)}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, fullTime.Jobs, 1)
}

func TestSearchPagination(t *testing.T) {
	env := newTestEnv(t)
	employer := createUser(t, env.db, "emp@test.com", models.UserRoleEmployer)

	for i := 0; i < 5; i++ {
		createJob(t, env.db, employer.ID, models.JobStatusActive)
	}

	page1, err := env.jobService.SearchJobs(env.db, &dto.JobSearchRequest{}, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page1.Jobs, 2)
	assert.Equal(t, int64(5), page1.Pagination.Total)
	assert.Equal(t, 3, page1.Pagination.Pages)

	page3, err := env.jobService.SearchJobs(env.db, &dto.JobSearchRequest{}, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3.Jobs, 1)
}

func TestListMyJobsAndStats(t *testing.T) {
	env := newTestEnv(t)
	employer := createUser(t, env.db, "emp@test.com", models.UserRoleEmployer)
	other := createUser(t, env.db, "other@test.com", models.UserRoleEmployer)
	candidate := createUser(t, env.db, "cand@test.com", models.UserRoleCandidate)

	job := createJob(t, env.db, employer.ID, models.JobStatusActive)
	createJob(t, env.db, employer.ID, models.JobStatusClosed)
	createJob(t, env.db, other.ID, models.JobStatusActive)

	_, err := env.appService.Apply(env.db, candidate.ID, job.ID, &dto.CreateApplicationRequest{})
	require.NoError(t, err)

	// В отличие от публичного поиска, владелец видит все свои статусы
	mine, err := env.jobService.ListMyJobs(env.db, employer.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.Pagination.Total)

	stats, err := env.jobService.GetStats(env.db, employer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalJobs)
	assert.Equal(t, int64(1), stats.JobsByStatus[models.JobStatusActive])
	assert.Equal(t, int64(1), stats.JobsByStatus[models.JobStatusClosed])
	assert.Equal(t, int64(1), stats.TotalApplications)
	assert.Equal(t, int64(1), stats.ApplicationsByState[models.ApplicationStatusPending])
}
