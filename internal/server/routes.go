package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	// Init swagger doc
	_ "jobboard-backend/docs"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/controller/application"
	"jobboard-backend/internal/controller/job"
	"jobboard-backend/internal/controller/user"
	"jobboard-backend/internal/middleware"
	"jobboard-backend/internal/model"
)

const maxBodyBytes = 1 << 20

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	r.Use(
		middleware.SafeHeader(),
		cors.New(cors.Config{
			AllowOrigins:     s.Config.AllowOrigins(),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: !allowsAny(s.Config.AllowOrigins()),
		}),
		middleware.SizeLimit(maxBodyBytes),
	)

	lAuth := auth.NewLocalAuthHandler(s.DB, s.Tokens, s.AuthLog)
	logout := auth.NewLogoutController(s.Blacklist, s.AuthLog)
	jobs := job.NewJobController(s.DB)
	applications := application.NewApplicationController(s.DB)
	users := user.NewUserController(s.DB)

	requireAuth := []gin.HandlerFunc{middleware.RequireAuth(s.Tokens), middleware.JwtBlacklistCheck(s.Blacklist)}
	requireAdmin := []gin.HandlerFunc{
		middleware.RequireAuth(s.Tokens),
		middleware.JwtBlacklistCheck(s.Blacklist),
		middleware.CheckRole(model.RoleAdmin),
	}

	r.GET("/health", s.healthHandler)

	api := r.Group("/api")
	{
		authRoute := api.Group("/auth")
		{
			limited := authRoute.Group("", middleware.RateLimiter(uint(s.Config.RateLimitPerSecond)))
			limited.POST("/register", lAuth.RegisterHandler)
			limited.POST("/login", lAuth.LoginHandler)

			authRoute.Group("", requireAdmin...).POST("/register-admin", lAuth.RegisterAdminHandler)
			authRoute.Group("", requireAuth...).POST("/logout", logout.LogoutHandler)
		}

		jobRoute := api.Group("/jobs")
		{
			jobRoute.GET("", jobs.ListJobs)
			jobRoute.GET("/filter", jobs.FilterJobs)
			jobRoute.Group("", requireAuth...).GET("/:id", jobs.GetJob)

			adminJob := jobRoute.Group("", requireAdmin...)
			adminJob.POST("", jobs.CreateJob)
			adminJob.PUT("/:id", jobs.UpdateJob)
			adminJob.DELETE("/:id", jobs.DeleteJob)
		}

		applicationRoute := api.Group("/applications", requireAuth...)
		{
			applicationRoute.POST("/:jobId", applications.Apply)
			applicationRoute.GET("/mine", applications.MyApplications)

			adminApplication := applicationRoute.Group("", middleware.CheckRole(model.RoleAdmin))
			adminApplication.GET("", applications.AllApplications)
			adminApplication.GET("/job/:jobId", applications.JobApplications)
			adminApplication.GET("/user/:userId", applications.UserApplications)
			adminApplication.GET("/count/:jobId", applications.CountApplications)
			adminApplication.PUT("/:id/status", applications.UpdateStatus)
			adminApplication.DELETE("/:id", applications.DeleteApplication)
		}

		userRoute := api.Group("/users", requireAuth...)
		{
			userRoute.GET("/me", users.GetMe)
			userRoute.PUT("/me", users.UpdateMe)
			userRoute.DELETE("", users.DeleteMe)

			adminUser := userRoute.Group("", middleware.CheckRole(model.RoleAdmin))
			adminUser.GET("", users.ListUsers)
			adminUser.DELETE("/:userId", users.DeleteUser)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// allowsAny reports a wildcard origin, which browsers refuse together with credentials
func allowsAny(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// healthHandler reports database statistics, 503 when the database is unreachable
// @Summary Database health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (s *MyServer) healthHandler(c *gin.Context) {
	stats := s.DB.Health(c.Request.Context())
	if stats["status"] != "up" {
		c.JSON(http.StatusServiceUnavailable, stats)
		return
	}
	c.JSON(http.StatusOK, stats)
}
