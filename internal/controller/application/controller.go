// Package application provides HTTP handlers for job applications.
package application

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

const recency = "applied_at DESC, id DESC"

// ApplicationController handles application related endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
}

// NewApplicationController creates a new instance of ApplicationController
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

type applyInfo struct {
	CoverLetter string `json:"coverLetter" binding:"required"`
	CVLink      string `json:"cvLink" binding:"required"`
}

type statusInfo struct {
	Status model.ApplicationStatus `json:"status" binding:"required"`
}

// Apply creates an application of the caller for a job
// @Summary Apply for a job
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path int true "Job id"
// @Param Application body applyInfo true "Cover letter and link to CV"
// @Success 201 {object} model.ApplicationResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id or missing field"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job or user not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{jobId} [post]
func (ac *ApplicationController) Apply(c *gin.Context) {
	jobID, ok := utilities.ParseID(c, "jobId")
	if !ok {
		return
	}

	user, err := utilities.ExtractIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Message: "Access denied", Error: err.Error()})
		return
	}

	var info applyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "Cover letter and CV link are required",
			Error:   err.Error(),
		})
		return
	}

	application := model.Application{
		JobID:       jobID,
		UserID:      user.ID,
		CoverLetter: info.CoverLetter,
		CVLink:      info.CVLink,
		Status:      model.StatusApplied,
	}
	if err := ac.DB.WithContext(c.Request.Context()).Create(&application).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: ac.missingReference(c, jobID)})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to submit application",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, model.ApplicationResponse{
		Message:     "Application submitted successfully",
		Application: application,
	})
}

// missingReference names the side of a rejected application that does not exist.
// The token outlives a deleted account, so the user can be the missing one.
func (ac *ApplicationController) missingReference(c *gin.Context, jobID uint) string {
	var count int64
	err := ac.DB.WithContext(c.Request.Context()).Model(&model.Job{}).Where("id = ?", jobID).Count(&count).Error
	if err == nil && count > 0 {
		return "User not found"
	}
	return "Job not found"
}

// MyApplications returns the caller's applications with their jobs
// @Summary List my applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} model.ApplicationListResponse
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Requested page is empty"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/mine [get]
func (ac *ApplicationController) MyApplications(c *gin.Context) {
	user, err := utilities.ExtractIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Message: "Access denied", Error: err.Error()})
		return
	}

	query := ac.DB.WithContext(c.Request.Context()).Where("user_id = ?", user.ID)
	ac.respondPage(c, query, "Job")
}

// JobApplications returns applications for one job with their applicants
// @Summary List applications of a job
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path int true "Job id"
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} model.ApplicationListResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token or not admin"
// @Failure 404 {object} utilities.ErrorResponse "Requested page is empty"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/job/{jobId} [get]
func (ac *ApplicationController) JobApplications(c *gin.Context) {
	jobID, ok := utilities.ParseID(c, "jobId")
	if !ok {
		return
	}

	query := ac.DB.WithContext(c.Request.Context()).Where("job_id = ?", jobID)
	ac.respondPage(c, query, "User")
}

// UserApplications returns one user's applications with their jobs
// @Summary List applications of a user
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param userId path string true "User id"
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} model.ApplicationListResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid user id"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token or not admin"
// @Failure 404 {object} utilities.ErrorResponse "Requested page is empty"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/user/{userId} [get]
func (ac *ApplicationController) UserApplications(c *gin.Context) {
	userID, ok := utilities.ParseUUID(c, "userId")
	if !ok {
		return
	}

	query := ac.DB.WithContext(c.Request.Context()).Where("user_id = ?", userID)
	ac.respondPage(c, query, "Job")
}

// AllApplications returns every application with job and applicant
// @Summary List all applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} model.ApplicationListResponse
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token or not admin"
// @Failure 404 {object} utilities.ErrorResponse "Requested page is empty"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [get]
func (ac *ApplicationController) AllApplications(c *gin.Context) {
	ac.respondPage(c, ac.DB.WithContext(c.Request.Context()), "Job", "User")
}

func (ac *ApplicationController) respondPage(c *gin.Context, query *gorm.DB, preloads ...string) {
	p := utilities.ParsePagination(c)

	applications, total, err := database.Paginate[model.Application](query, p.Offset(), p.Limit, recency, preloads...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to fetch applications",
			Error:   err.Error(),
		})
		return
	}
	if len(applications) == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "No applications found"})
		return
	}

	c.JSON(http.StatusOK, model.ApplicationListResponse{
		Applications: applications,
		PageMeta:     p.Meta(total),
	})
}

// CountApplications returns how many applications a job received
// @Summary Count applications of a job
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path int true "Job id"
// @Success 200 {object} model.ApplicationCountResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token or not admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/count/{jobId} [get]
func (ac *ApplicationController) CountApplications(c *gin.Context) {
	jobID, ok := utilities.ParseID(c, "jobId")
	if !ok {
		return
	}

	var count int64
	if err := ac.DB.WithContext(c.Request.Context()).Model(&model.Application{}).Where("job_id = ?", jobID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to count applications",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.ApplicationCountResponse{
		JobID:            jobID,
		TotalApplication: count,
	})
}

// UpdateStatus sets the review status of an application
// @Summary Update application status
// @Description Any status of applied, accepted, rejected, interviewed can be set from any other
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application id"
// @Param Status body statusInfo true "New status"
// @Success 200 {object} model.ApplicationResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid id, missing or unknown status"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token or not admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/status [put]
func (ac *ApplicationController) UpdateStatus(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}

	var info statusInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "Status is required",
			Error:   err.Error(),
		})
		return
	}
	if !info.Status.Valid() {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Message: "Invalid status"})
		return
	}

	db := ac.DB.WithContext(c.Request.Context())
	res := db.Model(&model.Application{}).Where("id = ?", id).Update("status", info.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to update application status",
			Error:   res.Error.Error(),
		})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Application not found"})
		return
	}

	var application model.Application
	if err := db.First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to fetch application",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.ApplicationResponse{
		Message:     "Application status updated successfully",
		Application: application,
	})
}

// DeleteApplication removes an application
// @Summary Delete application
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application id"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token or not admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [delete]
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}

	res := ac.DB.WithContext(c.Request.Context()).Delete(&model.Application{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to delete application",
			Error:   res.Error.Error(),
		})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Application not found"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application deleted successfully"})
}
