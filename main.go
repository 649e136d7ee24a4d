package main

import (
	"log"

	"promptvault-backend/config"
	"promptvault-backend/internal/api"
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"
	"promptvault-backend/internal/services"
	"promptvault-backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter()
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	// Migrate the schema
	err = database.DB.AutoMigrate(&models.User{}, &models.Prompt{})
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := services.SeedAdmin(); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	if err := router.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
