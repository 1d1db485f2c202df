package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AhmedZafar5533/fitness-sub000/controllers"
	"github.com/AhmedZafar5533/fitness-sub000/middlewares"
	"github.com/AhmedZafar5533/fitness-sub000/services"
	"github.com/AhmedZafar5533/fitness-sub000/utils"
)

func SetupRouter(db *gorm.DB, catalog *services.FoodCatalog) *gin.Engine {
	r := gin.Default()

	statsSvc := services.NewDailyStatsService(db)
	validator := services.NewRecommendationValidator(db, catalog, utils.KeywordPolicy{})
	executor := services.NewRecommendationExecutor(db, statsSvc)
	builder := services.NewNutritionContextBuilder(db, statsSvc)
	authSvc := services.NewAuthService(db)
	rekSvc, err := services.NewRekognitionService(catalog)
	if err != nil {
		panic("rekognition init failed: " + err.Error())
	}

	authCtl := controllers.NewAuthController(authSvc)
	userCtl := controllers.NewUserController(db)
	mealCtl := controllers.NewMealController(db, validator, executor, rekSvc)
	statsCtl := controllers.NewDailyStatsController(statsSvc)
	recCtl := controllers.NewRecommendationController(validator, executor, builder)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(db))
	{
		api.GET("/user/profile", userCtl.GetProfile)
		api.PUT("/user/profile", userCtl.UpdateProfile)

		api.POST("/meals", mealCtl.Log)
		api.POST("/meals/photo", mealCtl.LogPhoto)
		api.GET("/meals/recent", mealCtl.Recent)

		api.GET("/stats/today", statsCtl.Today)
		api.POST("/stats/water", statsCtl.AddWater)
		api.PUT("/stats/goal", statsCtl.SetGoal)

		api.GET("/recommendations/context", recCtl.Context)
		api.POST("/recommendations/apply", recCtl.Apply)
	}

	return r
}
