// Package job provides HTTP handlers for job related operations.
package job

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

const recency = "posted_at DESC, id DESC"

// postedWithin maps the postedWithin query value to a look back window
var postedWithin = map[string]time.Duration{
	"week":  7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
}

// JobController handles job related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

// ListJobs returns jobs newest first
// @Summary List jobs
// @Tags Job
// @Produce json
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} model.JobListResponse
// @Failure 404 {object} utilities.ErrorResponse "Requested page is empty"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) ListJobs(c *gin.Context) {
	jc.respondPage(c, jc.DB.WithContext(c.Request.Context()), utilities.ParsePagination(c))
}

// FilterJobs returns jobs matching every given filter, newest first
// @Summary Filter jobs
// @Description Text filters match substrings. Empty filters are ignored.
// @Tags Job
// @Produce json
// @Param title query string false "Substring of title"
// @Param location query string false "Substring of location"
// @Param employmentType query string false "Substring of employment type"
// @Param postedWithin query string false "week or month, anything else means no limit"
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} model.JobListResponse
// @Failure 404 {object} utilities.ErrorResponse "Requested page is empty"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/filter [get]
func (jc *JobController) FilterJobs(c *gin.Context) {
	query := jc.DB.WithContext(c.Request.Context())

	if title := c.Query("title"); title != "" {
		query = query.Where("title LIKE ?", "%"+title+"%")
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("location LIKE ?", "%"+location+"%")
	}
	if employmentType := c.Query("employmentType"); employmentType != "" {
		query = query.Where("employment_type LIKE ?", "%"+employmentType+"%")
	}
	if window, ok := postedWithin[c.Query("postedWithin")]; ok {
		query = query.Where("posted_at >= ?", time.Now().Add(-window))
	}

	jc.respondPage(c, query, utilities.ParsePagination(c))
}

func (jc *JobController) respondPage(c *gin.Context, query *gorm.DB, p utilities.Pagination) {
	jobs, total, err := database.Paginate[model.Job](query, p.Offset(), p.Limit, recency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to fetch jobs",
			Error:   err.Error(),
		})
		return
	}
	if len(jobs) == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "No jobs found"})
		return
	}

	c.JSON(http.StatusOK, model.JobListResponse{
		Jobs:     jobs,
		PageMeta: p.Meta(total),
	})
}

// GetJob returns a single job
// @Summary Get job by id
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Success 200 {object} model.Job
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJob(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}

	var job model.Job
	if err := jc.DB.WithContext(c.Request.Context()).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to fetch job",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob stores a new job
// @Summary Create job
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body model.EditableJobInfo true "Every field is required"
// @Success 201 {object} model.JobResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing field"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token or not admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJob(c *gin.Context) {
	var job model.Job
	if err := c.ShouldBindJSON(&job.EditableJobInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "All fields are required",
			Error:   err.Error(),
		})
		return
	}

	if err := jc.DB.WithContext(c.Request.Context()).Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to create job",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, model.JobResponse{
		Message: "Job created successfully",
		Job:     job,
	})
}

// UpdateJob replaces every editable field of a job
// @Summary Update job
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Param Job body model.EditableJobInfo true "Every field is required"
// @Success 200 {object} model.JobResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid id or missing field"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token or not admin"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [put]
func (jc *JobController) UpdateJob(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}

	var info model.EditableJobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "All fields are required",
			Error:   err.Error(),
		})
		return
	}

	db := jc.DB.WithContext(c.Request.Context())
	res := db.Model(&model.Job{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":           info.Title,
		"description":     info.Description,
		"location":        info.Location,
		"company":         info.Company,
		"employment_type": info.EmploymentType,
	})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to update job",
			Error:   res.Error.Error(),
		})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Job not found"})
		return
	}

	var job model.Job
	if err := db.First(&job, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to fetch job",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.JobResponse{
		Message: "Job updated successfully",
		Job:     job,
	})
}

// DeleteJob removes a job that has no applications
// @Summary Delete job
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Missing token"
// @Failure 403 {object} utilities.ErrorResponse "Invalid token or not admin"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 409 {object} utilities.ErrorResponse "Job still has applications"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJob(c *gin.Context) {
	id, ok := utilities.ParseID(c, "id")
	if !ok {
		return
	}

	res := jc.DB.WithContext(c.Request.Context()).Delete(&model.Job{}, id)
	if res.Error != nil {
		if database.IsForeignKeyViolation(res.Error) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Message: "Job has applications and cannot be deleted",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to delete job",
			Error:   res.Error.Error(),
		})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Job not found"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted successfully"})
}
