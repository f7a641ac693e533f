package api

import (
	"net/http"

	"fitrek/fitrek-app/internal/auth"
	"fitrek/fitrek-app/internal/export"
	"fitrek/fitrek-app/internal/store"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers onto the router. exporter may be nil when
// no export bucket is configured.
func SetupRoutes(
	router *gin.Engine,
	s *store.Store,
	gateway auth.Gateway,
	exporter *export.Service,
	backendConfigured bool,
) {
	authHandler := NewAuthHandler(s, gateway)
	profileHandler := NewProfileHandler(s)
	exerciseHandler := NewExerciseHandler(s)
	programHandler := NewProgramHandler(s)
	logHandler := NewLogHandler(s)
	statsHandler := NewStatsHandler(s)
	exportHandler := NewExportHandler(s, exporter)

	authMiddleware := AuthMiddleware(gateway)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		// Lets clients distinguish "backend down" from "backend absent".
		apiV1.GET("/config", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"backendConfigured": backendConfigured,
				"exportConfigured":  exporter != nil,
			})
		})

		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/confirm", authHandler.ConfirmEmail)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/session", authHandler.Session)
		protected.POST("/auth/logout", authHandler.Logout)

		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.PutProfile)
		protected.POST("/preferences/dark-mode/toggle", profileHandler.ToggleDarkMode)

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/muscle-groups", exerciseHandler.ListMuscleGroups)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		programGroup := protected.Group("/programs")
		{
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.POST("", programHandler.CreateProgram)
			programGroup.PUT("/:id", programHandler.UpdateProgram)
			programGroup.DELETE("/:id", programHandler.DeleteProgram)
		}

		templateGroup := protected.Group("/templates")
		{
			templateGroup.GET("", programHandler.ListTemplates)
			templateGroup.POST("/:id/apply", programHandler.ApplyTemplate)
		}

		logGroup := protected.Group("/logs")
		{
			logGroup.GET("", logHandler.ListLogs)
			logGroup.POST("", logHandler.CreateLog)
			logGroup.DELETE("/:id", logHandler.DeleteLog)
		}

		statsGroup := protected.Group("/stats")
		{
			statsGroup.GET("/weekly", statsHandler.WeeklyProgress)
			statsGroup.GET("/progression", statsHandler.Progression)
		}

		protected.POST("/export", exportHandler.Export)
	}
}
