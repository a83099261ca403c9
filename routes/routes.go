package routes

import (
	"github.com/carolinaesses/comocomo/controllers"
	"github.com/carolinaesses/comocomo/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth    *controllers.AuthController
	Meals   *controllers.MealController
	Diet    *controllers.DietController
	Scoring *controllers.ScoringController
	Ingest  *controllers.IngestController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/signup", ctrl.Auth.Signup)
		auth.POST("/login", ctrl.Auth.Login)
	}

	// Protected API routes
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/meals", ctrl.Meals.ListMeals)
		api.POST("/meals", ctrl.Meals.CreateMeal)
		api.POST("/meals/bulk", ctrl.Meals.BulkImport)

		api.GET("/ideal-diet", ctrl.Diet.GetDiet)
		api.POST("/ideal-diet", ctrl.Diet.UpsertDiet)

		api.POST("/scoring/recalculate", ctrl.Scoring.Recalculate)
		api.GET("/scoring/daily", ctrl.Scoring.GetDailyScores)

		api.POST("/ingest-txt", ctrl.Ingest.IngestText)
	}

	return r
}
