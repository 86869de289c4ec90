package application

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/middleware"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct
var testTokens = auth.NewTokenIssuer("application-secret", "job-board", time.Hour)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
	os.Exit(code)
}

func newEngine() *gin.Engine {
	r := gin.New()
	ac := NewApplicationController(testDB)

	authed := r.Group("/api/applications", middleware.RequireAuth(testTokens))
	authed.POST("/:jobId", ac.Apply)
	authed.GET("/mine", ac.MyApplications)

	admin := authed.Group("", middleware.CheckRole(model.RoleAdmin))
	admin.GET("", ac.AllApplications)
	admin.GET("/job/:jobId", ac.JobApplications)
	admin.GET("/user/:userId", ac.UserApplications)
	admin.GET("/count/:jobId", ac.CountApplications)
	admin.PUT("/:id/status", ac.UpdateStatus)
	admin.DELETE("/:id", ac.DeleteApplication)
	return r
}

func adminToken(t *testing.T) string {
	return testutil.IssueToken(t, testTokens, database.TestAdminUser)
}

// newApplicant stores a fresh user so tests do not share application lists
func newApplicant(t *testing.T) (model.User, string) {
	t.Helper()
	u := model.User{
		FullName: "Applicant",
		Username: "applicant_" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@applicant.example.com",
		Password: "hash",
		Role:     model.RoleUser,
	}
	require.NoError(t, testDB.Create(&u).Error)
	return u, testutil.IssueToken(t, testTokens, u)
}

func applyBody() gin.H {
	return gin.H{"coverLetter": "I would love to join.", "cvLink": "https://cv.example.com/me.pdf"}
}

func apply(t *testing.T, r *gin.Engine, token string, jobID uint) map[string]interface{} {
	t.Helper()
	rec, resp := testutil.MakeJSONRequest(applyBody(), token, r, fmt.Sprintf("/api/applications/%d", jobID), http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	return resp["application"].(map[string]interface{})
}

func TestApply(t *testing.T) {
	r := newEngine()
	user, token := newApplicant(t)

	app := apply(t, r, token, database.TestJob2.ID)
	assert.Equal(t, string(model.StatusApplied), app["status"])
	assert.Equal(t, float64(database.TestJob2.ID), app["jobId"])
	assert.Equal(t, user.ID.String(), app["userId"])
	assert.NotEmpty(t, app["appliedAt"])

	// duplicates are allowed
	apply(t, r, token, database.TestJob2.ID)
}

func TestApplyErrors(t *testing.T) {
	r := newEngine()
	_, token := newApplicant(t)

	rec, resp := testutil.MakeJSONRequest(applyBody(), token, r, "/api/applications/999999", http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["message"])

	rec, _ = testutil.MakeJSONRequest(gin.H{"coverLetter": "no cv"}, token, r, fmt.Sprintf("/api/applications/%d", database.TestJob1.ID), http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(applyBody(), token, r, "/api/applications/x1", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(applyBody(), "", r, fmt.Sprintf("/api/applications/%d", database.TestJob1.ID), http.MethodPost)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApplyWithDeletedAccount(t *testing.T) {
	r := newEngine()
	ghost := model.User{ID: uuid.New(), Username: "deleted_account", Role: model.RoleUser}
	token := testutil.IssueToken(t, testTokens, ghost)

	rec, resp := testutil.MakeJSONRequest(applyBody(), token, r, fmt.Sprintf("/api/applications/%d", database.TestJob1.ID), http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", resp["message"])

	rec, resp = testutil.MakeJSONRequest(applyBody(), token, r, "/api/applications/999999", http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["message"])
}

func TestMyApplications(t *testing.T) {
	r := newEngine()
	_, token := newApplicant(t)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/api/applications/mine", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No applications found", resp["message"])

	apply(t, r, token, database.TestJob3.ID)
	apply(t, r, token, database.TestJob1.ID)

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/api/applications/mine", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	apps := testutil.Items(t, resp, "applications")
	require.Len(t, apps, 2)
	assert.Equal(t, float64(2), resp["total"])
	assert.Equal(t, float64(1), resp["totalPages"])

	// newest first, with the job attached
	assert.Equal(t, float64(database.TestJob1.ID), apps[0]["jobId"])
	job := apps[0]["job"].(map[string]interface{})
	assert.Equal(t, database.TestJob1.Title, job["title"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/api/applications/mine?limit=1&page=2", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.Items(t, resp, "applications"), 1)
	assert.Equal(t, float64(2), resp["totalPages"])
}

func TestAdminListings(t *testing.T) {
	r := newEngine()
	user, token := newApplicant(t)
	app := apply(t, r, token, database.TestJob2.ID)

	rec, resp := testutil.MakeJSONRequest(nil, adminToken(t), r, fmt.Sprintf("/api/applications/job/%d?limit=100", database.TestJob2.ID), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	found := false
	for _, a := range testutil.Items(t, resp, "applications") {
		assert.Equal(t, float64(database.TestJob2.ID), a["jobId"])
		if a["id"] == app["id"] {
			found = true
			applicant := a["user"].(map[string]interface{})
			assert.Equal(t, user.Username, applicant["username"])
			assert.NotContains(t, applicant, "password")
		}
	}
	assert.True(t, found)

	rec, resp = testutil.MakeJSONRequest(nil, adminToken(t), r, "/api/applications/user/"+user.ID.String(), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.Items(t, resp, "applications"), 1)

	rec, _ = testutil.MakeJSONRequest(nil, adminToken(t), r, "/api/applications/user/not-a-uuid", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = testutil.MakeJSONRequest(nil, adminToken(t), r, "/api/applications?limit=100", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	all := testutil.Items(t, resp, "applications")
	assert.NotEmpty(t, all)
	assert.Contains(t, all[0], "job")
	assert.Contains(t, all[0], "user")

	// regular users cannot reach admin listings
	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/api/applications", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", resp["message"])
}

func TestCountApplications(t *testing.T) {
	r := newEngine()
	_, token := newApplicant(t)
	job := model.Job{EditableJobInfo: model.EditableJobInfo{
		Title: "Counted", Description: "d", Location: "l", Company: "c", EmploymentType: "e",
	}}
	require.NoError(t, testDB.Create(&job).Error)

	rec, resp := testutil.MakeJSONRequest(nil, adminToken(t), r, fmt.Sprintf("/api/applications/count/%d", job.ID), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), resp["totalApplication"])

	apply(t, r, token, job.ID)
	apply(t, r, token, job.ID)

	rec, resp = testutil.MakeJSONRequest(nil, adminToken(t), r, fmt.Sprintf("/api/applications/count/%d", job.ID), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(job.ID), resp["jobId"])
	assert.Equal(t, float64(2), resp["totalApplication"])
}

func TestUpdateStatus(t *testing.T) {
	r := newEngine()
	_, token := newApplicant(t)
	app := apply(t, r, token, database.TestJob3.ID)
	path := fmt.Sprintf("/api/applications/%d/status", uint(app["id"].(float64)))

	for _, s := range []model.ApplicationStatus{model.StatusInterviewed, model.StatusRejected, model.StatusAccepted, model.StatusApplied} {
		rec, resp := testutil.MakeJSONRequest(gin.H{"status": s}, adminToken(t), r, path, http.MethodPut)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, string(s), resp["application"].(map[string]interface{})["status"])
	}

	rec, resp := testutil.MakeJSONRequest(gin.H{"status": "hired"}, adminToken(t), r, path, http.MethodPut)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status", resp["message"])

	var stored model.Application
	require.NoError(t, testDB.First(&stored, uint(app["id"].(float64))).Error)
	assert.Equal(t, model.StatusApplied, stored.Status, "rejected update must not touch the row")

	rec, _ = testutil.MakeJSONRequest(gin.H{}, adminToken(t), r, path, http.MethodPut)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{"status": "accepted"}, adminToken(t), r, "/api/applications/999999/status", http.MethodPut)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{"status": "accepted"}, token, r, path, http.MethodPut)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteApplication(t *testing.T) {
	r := newEngine()
	_, token := newApplicant(t)
	app := apply(t, r, token, database.TestJob2.ID)
	path := fmt.Sprintf("/api/applications/%d", uint(app["id"].(float64)))

	rec, _ := testutil.MakeJSONRequest(nil, token, r, path, http.MethodDelete)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, adminToken(t), r, path, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, adminToken(t), r, path, http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
