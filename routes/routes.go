package routes

import (
	"net/http"

	"github.com/guraspy/personalized-workout-api/controllers"
	"github.com/guraspy/personalized-workout-api/middlewares"
	"github.com/guraspy/personalized-workout-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps is everything the router needs to build its handlers.
type Deps struct {
	DB          *gorm.DB
	Auth        *services.AuthService
	Exercises   *services.ExerciseService
	Plans       *services.WorkoutPlanService
	Goals       *services.GoalService
	Tracking    *services.TrackingService
	Progress    *services.ProgressService
	RateLimiter *middlewares.RateLimiter // nil disables throttling
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.Logger(), middlewares.Metrics(), middlewares.Cors())

	r.GET("/healthz", healthz(d.DB))
	r.GET("/metrics", middlewares.MetricsHandler())

	authCtl := controllers.NewAuthController(d.Auth)
	requireAuth := middlewares.AuthMiddleware(d.Auth)

	// Public auth routes
	auth := r.Group("/auth")
	if d.RateLimiter != nil {
		auth.Use(d.RateLimiter.Middleware())
	}
	{
		auth.POST("/register/", authCtl.Register)
		auth.POST("/login/", authCtl.Login)
		auth.POST("/token/refresh/", authCtl.Refresh)
		auth.POST("/logout/", requireAuth, authCtl.Logout)
		auth.GET("/me/", requireAuth, authCtl.Me)
	}

	exerciseCtl := controllers.NewExerciseController(d.Exercises)
	exercises := r.Group("/exercises", requireAuth)
	{
		exercises.GET("/", exerciseCtl.List)
		exercises.GET("/:id", exerciseCtl.Get)
	}

	planCtl := controllers.NewWorkoutPlanController(d.Plans)
	plans := r.Group("/workout-plans", requireAuth)
	{
		plans.GET("/", planCtl.List)
		plans.POST("/", planCtl.Create)
		plans.GET("/:id", planCtl.Get)
		plans.PUT("/:id", planCtl.Update)
		plans.PATCH("/:id", planCtl.Update)
		plans.DELETE("/:id", planCtl.Delete)
	}

	goalCtl := controllers.NewGoalController(d.Goals)
	goals := r.Group("/goals", requireAuth)
	{
		goals.GET("/", goalCtl.List)
		goals.POST("/", goalCtl.Create)
		goals.GET("/:id", goalCtl.Get)
		goals.PUT("/:id", goalCtl.Update)
		goals.PATCH("/:id", goalCtl.Update)
		goals.DELETE("/:id", goalCtl.Delete)
	}

	trackingCtl := controllers.NewTrackingController(d.Tracking)
	tracking := r.Group("/tracking", requireAuth)
	{
		tracking.GET("/", trackingCtl.List)
		tracking.POST("/", trackingCtl.Create)
		tracking.GET("/:id", trackingCtl.Get)
		tracking.PUT("/:id", trackingCtl.Update)
		tracking.PATCH("/:id", trackingCtl.Update)
		tracking.DELETE("/:id", trackingCtl.Delete)
	}

	progressCtl := controllers.NewProgressController(d.Progress)
	r.GET("/progress/summary/", requireAuth, progressCtl.Summary)

	return r
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
