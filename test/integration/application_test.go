package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"worklink_backend/internal/models"
	"worklink_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyToJob(t *testing.T, ts *helpers.TestServer, candidateToken, jobID string) string {
	t.Helper()

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/applications", candidateToken, map[string]interface{}{
		"cover_letter": "I am a great fit",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Отклик должен быть успешным. Ответ: "+bodyStr)

	var parsed struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &parsed))
	require.Equal(t, "pending", parsed.Status)
	return parsed.ID
}

func TestApplicationFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	employer := helpers.RegisterUser(t, ts, models.UserRoleEmployer)
	candidate := helpers.RegisterUser(t, ts, models.UserRoleCandidate)

	jobID := helpers.CreateJob(t, ts, employer.AccessToken, "Application Flow Job")
	appID := applyToJob(t, ts, candidate.AccessToken, jobID)

	// Повторный отклик на ту же вакансию отклоняется
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/applications", candidate.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "already applied")

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/my", candidate.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, appID)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/employer", employer.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, appID)

	// pending -> reviewing -> shortlisted -> accepted
	res, bodyStr = ts.SendRequest(t, http.MethodPatch, "/api/v1/applications/"+appID+"/status", employer.AccessToken, map[string]interface{}{
		"status": "reviewing",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"status":"reviewing"`)
	assert.Contains(t, bodyStr, "reviewed_at")

	res, _ = ts.SendRequest(t, http.MethodPatch, "/api/v1/applications/"+appID+"/status", employer.AccessToken, map[string]interface{}{
		"status":         "shortlisted",
		"employer_notes": "Strong candidate",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, http.MethodPatch, "/api/v1/applications/"+appID+"/status", employer.AccessToken, map[string]interface{}{
		"status": "accepted",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"status":"accepted"`)

	// Из терминального статуса переходов нет
	res, bodyStr = ts.SendRequest(t, http.MethodPatch, "/api/v1/applications/"+appID+"/status", employer.AccessToken, map[string]interface{}{
		"status": "rejected",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "INVALID_STATUS")
}

func TestApplicationInvalidTransition(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	employer := helpers.RegisterUser(t, ts, models.UserRoleEmployer)
	candidate := helpers.RegisterUser(t, ts, models.UserRoleCandidate)

	jobID := helpers.CreateJob(t, ts, employer.AccessToken, "Invalid Transition Job")
	appID := applyToJob(t, ts, candidate.AccessToken, jobID)

	// pending -> accepted запрещен, ответ содержит допустимые переходы
	res, bodyStr := ts.SendRequest(t, http.MethodPatch, "/api/v1/applications/"+appID+"/status", employer.AccessToken, map[string]interface{}{
		"status": "accepted",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "current_status")
	assert.Contains(t, bodyStr, "reviewing")
}

func TestApplicationWrongEmployer(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	employer := helpers.RegisterUser(t, ts, models.UserRoleEmployer)
	intruder := helpers.RegisterUser(t, ts, models.UserRoleEmployer)
	candidate := helpers.RegisterUser(t, ts, models.UserRoleCandidate)

	jobID := helpers.CreateJob(t, ts, employer.AccessToken, "Wrong Employer Job")
	appID := applyToJob(t, ts, candidate.AccessToken, jobID)

	// Чужой отклик выглядит как несуществующий
	res, bodyStr := ts.SendRequest(t, http.MethodPatch, "/api/v1/applications/"+appID+"/status", intruder.AccessToken, map[string]interface{}{
		"status": "reviewing",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, "Application not found")

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/"+appID, intruder.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestApplyRestrictions(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	employer := helpers.RegisterUser(t, ts, models.UserRoleEmployer)
	candidate := helpers.RegisterUser(t, ts, models.UserRoleCandidate)

	jobID := helpers.CreateJob(t, ts, employer.AccessToken, "Restricted Job")

	// Работодатель не может откликаться вовсе (роль не проходит)
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/applications", employer.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "Insufficient permissions")

	// Отклик на закрытую вакансию отклоняется
	res, _ = ts.SendRequest(t, http.MethodPatch, "/api/v1/jobs/"+jobID+"/close", employer.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/applications", candidate.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Job is not active")
}

func TestWithdrawApplication(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	employer := helpers.RegisterUser(t, ts, models.UserRoleEmployer)
	candidate := helpers.RegisterUser(t, ts, models.UserRoleCandidate)

	jobID := helpers.CreateJob(t, ts, employer.AccessToken, "Withdraw Job")
	appID := applyToJob(t, ts, candidate.AccessToken, jobID)

	res, _ := ts.SendRequest(t, http.MethodDelete, "/api/v1/applications/"+appID, candidate.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// После отзыва можно откликнуться заново
	appID = applyToJob(t, ts, candidate.AccessToken, jobID)

	res, _ = ts.SendRequest(t, http.MethodPatch, "/api/v1/applications/"+appID+"/status", employer.AccessToken, map[string]interface{}{
		"status": "reviewing",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Рассмотренный отклик отозвать нельзя
	res, bodyStr := ts.SendRequest(t, http.MethodDelete, "/api/v1/applications/"+appID, candidate.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "pending")
}

func TestApplicationStats(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	employer := helpers.RegisterUser(t, ts, models.UserRoleEmployer)
	candidate := helpers.RegisterUser(t, ts, models.UserRoleCandidate)

	jobID := helpers.CreateJob(t, ts, employer.AccessToken, "Stats Application Job")
	applyToJob(t, ts, candidate.AccessToken, jobID)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/applications/stats/my", employer.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"total":1`)
	assert.Contains(t, bodyStr, `"pending":1`)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/stats/job/"+jobID, employer.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"total":1`)
	assert.Contains(t, bodyStr, `"pending":1`)

	// По чужой вакансии статистика не отдается
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/stats/job/"+jobID, candidate.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
