package main

import (
	"go.uber.org/zap"

	"github.com/AhmedZafar5533/fitness-sub000/config"
	"github.com/AhmedZafar5533/fitness-sub000/logger"
	"github.com/AhmedZafar5533/fitness-sub000/routes"
	"github.com/AhmedZafar5533/fitness-sub000/services"
	"github.com/AhmedZafar5533/fitness-sub000/utils"
)

func main() {
	logger.Init()
	defer logger.Close()

	config.InitDB()
	utils.InitS3()

	catalog := services.NewFoodCatalog(config.FoodDatasetPath())
	if err := catalog.Load(); err != nil {
		logger.Fatal("food catalog load failed: " + err.Error())
	}
	logger.Info("food catalog loaded", zap.Int("foods", catalog.Size()))

	r := routes.SetupRouter(config.DB, catalog)
	logger.Info("listening", zap.String("addr", ":8080"))
	if err := r.Run(":8080"); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
