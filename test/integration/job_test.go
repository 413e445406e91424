package integration_test

import (
	"net/http"
	"testing"

	"worklink_backend/internal/models"
	"worklink_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobLifecycle(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	employer := helpers.RegisterUser(t, ts, models.UserRoleEmployer)

	jobID := helpers.CreateJob(t, ts, employer.AccessToken, "Lifecycle Go Engineer")

	// Вакансия доступна публично, без токена
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+jobID, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Lifecycle Go Engineer")
	assert.Contains(t, bodyStr, `"status":"active"`)

	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/jobs/"+jobID, employer.AccessToken, map[string]interface{}{
		"title": "Lifecycle Senior Go Engineer",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Lifecycle Senior Go Engineer")

	res, bodyStr = ts.SendRequest(t, http.MethodPatch, "/api/v1/jobs/"+jobID+"/close", employer.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"status":"closed"`)

	// Повторное закрытие отклоняется
	res, bodyStr = ts.SendRequest(t, http.MethodPatch, "/api/v1/jobs/"+jobID+"/close", employer.AccessToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "INVALID_STATUS")

	res, bodyStr = ts.SendRequest(t, http.MethodPatch, "/api/v1/jobs/"+jobID+"/reopen", employer.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"status":"active"`)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/jobs/"+jobID, employer.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+jobID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestJobSearch(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	employer := helpers.RegisterUser(t, ts, models.UserRoleEmployer)

	activeID := helpers.CreateJob(t, ts, employer.AccessToken, "Searchable Kotlin Developer")
	closedID := helpers.CreateJob(t, ts, employer.AccessToken, "Searchable Kotlin Architect")

	res, _ := ts.SendRequest(t, http.MethodPatch, "/api/v1/jobs/"+closedID+"/close", employer.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Поиск публичный и регистронезависимый; закрытые вакансии скрыты
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/search?q=searchable+KOTLIN", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, activeID)
	assert.NotContains(t, bodyStr, closedID)
	assert.Contains(t, bodyStr, "pagination")
}

func TestJobOwnership(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	owner := helpers.RegisterUser(t, ts, models.UserRoleEmployer)
	other := helpers.RegisterUser(t, ts, models.UserRoleEmployer)

	jobID := helpers.CreateJob(t, ts, owner.AccessToken, "Ownership Test Job")

	// Чужая вакансия выглядит как несуществующая
	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/jobs/"+jobID, other.AccessToken, map[string]interface{}{
		"title": "Hijacked Title",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, "Job not found")

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/jobs/"+jobID, other.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCandidateCannotManageJobs(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	candidate := helpers.RegisterUser(t, ts, models.UserRoleCandidate)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", candidate.AccessToken, map[string]interface{}{
		"title": "Candidate Made Job",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "Insufficient permissions")
}

func TestJobValidation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	employer := helpers.RegisterUser(t, ts, models.UserRoleEmployer)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", employer.AccessToken, map[string]interface{}{
		"title":      "Broken Salary Job",
		"salary_min": 5000,
		"salary_max": 1000,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "salary_max")
}

func TestMyJobsAndStats(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	employer := helpers.RegisterUser(t, ts, models.UserRoleEmployer)
	candidate := helpers.RegisterUser(t, ts, models.UserRoleCandidate)

	jobID := helpers.CreateJob(t, ts, employer.AccessToken, "Stats Test Job")

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/applications", candidate.AccessToken, map[string]interface{}{
		"cover_letter": "Hire me",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Отклик должен быть успешным. Ответ: "+bodyStr)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/my", employer.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, jobID)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/stats/my", employer.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "total_jobs")
	assert.Contains(t, bodyStr, "total_applications")
}

func TestJobViewCounter(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	employer := helpers.RegisterUser(t, ts, models.UserRoleEmployer)
	jobID := helpers.CreateJob(t, ts, employer.AccessToken, "View Counter Job")

	// Просмотр владельца не увеличивает счетчик
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+jobID, employer.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"views":0`)

	// Анонимный просмотр - увеличивает
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+jobID, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"views":1`)
}
