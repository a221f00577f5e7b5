package router

import (
	"net/http"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/config"
	"github.com/careerbridge/careerbridge-backend/internal/handler"
	"github.com/careerbridge/careerbridge-backend/internal/middleware"
	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository/cache"
	"github.com/careerbridge/careerbridge-backend/internal/response"
	"github.com/careerbridge/careerbridge-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// directoryMaxAge is how long clients may cache public directory reads.
const directoryMaxAge = 60

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Question    *handler.QuestionHandler
	College     *handler.CollegeHandler
	Student     *handler.StudentHandler
	Application *handler.ApplicationHandler
	Test        *handler.TestHandler
	System      *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	counter cache.Counter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	response.ExposeDetail(cfg.IsDevelopment())

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("invalid TRUSTED_PROXIES, trusting none")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(
		response.RequestIDMiddleware(),
		middleware.RequestLogger(log),
		middleware.Recovery(log, cfg.IsDevelopment()),
	)

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Brotli(), middleware.BodyLimit(cfg.MaxBodyBytes))

	router.GET("/health", handlers.System.Health)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": response.GetMessage(response.ErrRouteNotFound),
			"path":  c.Request.URL.Path,
		})
	})

	requireAuth := middleware.RequireAuth(authService)
	optionalAuth := middleware.OptionalAuth(authService)
	collegeOnly := middleware.RequireRole(model.RoleCollege)
	limiter := middleware.NewRateLimiter(counter, cfg.RateLimitRequests, cfg.RateLimitWindow, log)

	api := router.Group("/api")
	api.Use(limiter.Middleware())

	// ─── 1. Auth (Public except logout/verify) ─────────────────────────
	auth := api.Group("/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/register/student", handlers.Auth.RegisterStudent)
		auth.POST("/register/college", handlers.Auth.RegisterCollege)
		auth.POST("/logout", requireAuth, handlers.Auth.Logout)
		auth.GET("/verify", requireAuth, handlers.Auth.Verify)
	}

	// ─── 2. College directory (public reads) ───────────────────────────
	colleges := api.Group("/colleges")
	{
		directory := colleges.Group("", optionalAuth, middleware.CacheControl(directoryMaxAge))
		directory.GET("", handlers.College.ListColleges)
		directory.GET("/:id", handlers.College.GetCollege)
		directory.GET("/:id/courses", handlers.College.ListCourses)

		manage := colleges.Group("", requireAuth, collegeOnly)
		manage.POST("", handlers.College.CreateCollege)
		manage.PUT("/:id", handlers.College.UpdateCollege)
		manage.DELETE("/:id", handlers.College.DeleteCollege)
		manage.POST("/:id/courses", handlers.College.AddCourse)
		manage.GET("/:id/applications", handlers.College.ListApplications)
	}

	// ─── 3. Questions (reads for everyone signed in) ───────────────────
	questions := api.Group("/questions", requireAuth)
	{
		questions.GET("", handlers.Question.ListQuestions)
		questions.GET("/:id", handlers.Question.GetQuestion)
		questions.POST("", collegeOnly, handlers.Question.CreateQuestion)
		questions.POST("/bulk", collegeOnly, handlers.Question.BulkUpload)
		questions.PUT("/:id", collegeOnly, handlers.Question.UpdateQuestion)
		questions.DELETE("/:id", collegeOnly, handlers.Question.DeleteQuestion)
	}

	// ─── 4. Tests ──────────────────────────────────────────────────────
	tests := api.Group("/tests", requireAuth)
	{
		tests.GET("", handlers.Test.ListTests)
		tests.GET("/:id", handlers.Test.GetTest)
		tests.POST("/:id/submit", handlers.Test.SubmitTest)
		tests.POST("", collegeOnly, handlers.Test.CreateTest)
		tests.PUT("/:id", collegeOnly, handlers.Test.UpdateTest)
		tests.DELETE("/:id", collegeOnly, handlers.Test.DeleteTest)
		tests.POST("/:id/publish", collegeOnly, handlers.Test.PublishTest)
		tests.GET("/:id/results", collegeOnly, handlers.Test.GetResults)
	}

	// ─── 5. Students ───────────────────────────────────────────────────
	students := api.Group("/students", requireAuth)
	{
		students.GET("", handlers.Student.ListStudents)
		students.GET("/:id", handlers.Student.GetStudent)
		students.PUT("/:id", handlers.Student.UpdateStudent)
		students.DELETE("/:id", handlers.Student.DeleteStudent)
		students.GET("/:id/applications", handlers.Student.ListApplications)
		students.POST("/:id/applications", handlers.Student.Apply)
	}

	// ─── 6. Applications ───────────────────────────────────────────────
	api.POST("/applications/:id/decision", requireAuth, collegeOnly, handlers.Application.Decide)

	return router
}
