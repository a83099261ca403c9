package main

import (
	"log"
	"os"

	"github.com/carolinaesses/comocomo/config"
	"github.com/carolinaesses/comocomo/controllers"
	"github.com/carolinaesses/comocomo/routes"
	"github.com/carolinaesses/comocomo/services"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.InitDB()
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	scoringSvc := services.NewScoringService(db, logger)
	mealSvc := services.NewMealService(db, scoringSvc, logger)
	dietSvc := services.NewDietService(db, scoringSvc, logger)
	authSvc := services.NewAuthService(db)
	ingestSvc := services.NewIngestService(
		services.NewGeminiService(),
		services.NewSheetsService(),
		mealSvc,
		logger,
	)

	r := routes.SetupRouter(routes.Controllers{
		Auth:    controllers.NewAuthController(authSvc),
		Meals:   controllers.NewMealController(mealSvc),
		Diet:    controllers.NewDietController(dietSvc),
		Scoring: controllers.NewScoringController(scoringSvc),
		Ingest:  controllers.NewIngestController(ingestSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
