package main

import (
	"github.com/shailyapp/shaily/config"
	"github.com/shailyapp/shaily/models"
	"github.com/shailyapp/shaily/routes"
	"github.com/shailyapp/shaily/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.UserGamification{},
		&models.DailyGamificationLog{},
		&models.Routine{},
		&models.DailyLog{},
		&models.UserProduct{},
		&models.BlogPost{},
		&models.PageView{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
