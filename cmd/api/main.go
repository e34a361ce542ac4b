package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"bus-company-admin-api/config"
	"bus-company-admin-api/internal/activity"
	"bus-company-admin-api/internal/api/routes"
	"bus-company-admin-api/internal/auth"
	"bus-company-admin-api/internal/database"
	"bus-company-admin-api/internal/logger"
	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/resolver"
	"bus-company-admin-api/internal/services"
	"bus-company-admin-api/internal/session"
	"bus-company-admin-api/internal/socket"
	"bus-company-admin-api/internal/store"
)

func main() {
	godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	logger.Setup(cfg.Log.File, cfg.Log.Level)
	auth.Configure(cfg.JWT.Secret, cfg.JWT.Expiration)

	db, err := database.Connect(cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		logrus.Fatalf("Could not connect to MongoDB: %v", err)
	}
	defer database.Disconnect(db)

	if cfg.Seed.DemoCompany {
		if err := database.SeedDemoCompany(db); err != nil {
			logrus.Fatalf("Could not seed demo company: %v", err)
		}
	}

	st := store.NewMongo(db)
	res := resolver.New(st)
	act := activity.New(st)
	defer act.Close()

	wsHub := socket.NewHub()
	act.OnAppend(func(rec models.ActivityLog) {
		wsHub.Send(rec.CompanyID, rec)
	})

	deps := services.Deps{Store: st, Resolver: res, Activity: act}
	sessions := session.NewStore()
	company := services.NewCompanyService(deps, sessions)
	sections := services.NewRegistry(deps)

	router := routes.SetupRouter(company, sections, wsHub)

	logrus.Infof("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logrus.Fatalf("Failed to run server: %v", err)
	}
}
